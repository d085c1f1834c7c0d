package main

import (
	"sz-init/cmd"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
)

func main() {
	cmd.Execute()
}
