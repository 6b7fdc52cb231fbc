package postgres

import (
	"io/fs"
)

func migrationsFS() fs.FS {
	sub, err := fs.Sub(migrations, "migrations")
	if err != nil {
		// embed guarantees the directory exists
		panic(err)
	}
	return sub
}
