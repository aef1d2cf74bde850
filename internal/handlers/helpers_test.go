package handlers

import (
	"bytes"
	"database/sql"
	"io"
)

func sqlErrNoRows() error { return sql.ErrNoRows }

func jsonBody(s string) io.Reader { return bytes.NewBufferString(s) }
