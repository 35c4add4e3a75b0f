package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// .env opcional; las variables ya definidas tienen prioridad.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "aviso: no se pudo leer .env: %v\n", err)
	}
	os.Exit(Execute(os.Args[1:]))
}
