package invite

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrIsDirectory is wrapped by ResourceNotFoundError when the recipient path
// names a directory.
var ErrIsDirectory = errors.New("is a directory")

// Load opens path and parses it with Read.
func Load(path string) ([]Invite, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &ResourceNotFoundError{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &ResourceNotFoundError{Path: path, Err: ErrIsDirectory}
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, &ResourceNotFoundError{Path: path, Err: err}
	}
	defer file.Close()

	invites, err := Read(file)
	if err != nil {
		var schemaErr *SchemaError
		if errors.As(err, &schemaErr) {
			return nil, err
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return invites, nil
}

// Read parses a CSV stream with a header row into invites, preserving row
// order. Columns are matched by name; extra columns are ignored. A leading
// UTF-8 or UTF-16 byte-order mark is consumed.
func Read(r io.Reader) ([]Invite, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &SchemaError{Column: RequiredColumns[0]}
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var invites []Invite
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		field := func(column string) string {
			pos := index[column]
			if pos < len(record) {
				return record[pos]
			}
			return ""
		}
		invites = append(invites, Invite{
			ID:         field(ColumnID),
			Name:       field(ColumnName),
			Phone:      field(ColumnPhone),
			Token:      field(ColumnToken),
			Status:     field(ColumnStatus),
			InviteLink: field(ColumnInviteLink),
		})
	}
	return invites, nil
}

func columnIndex(header []string) (map[string]int, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		// Last duplicate wins.
		positions[name] = i
	}
	index := make(map[string]int, len(RequiredColumns))
	for _, column := range RequiredColumns {
		pos, ok := positions[column]
		if !ok {
			return nil, &SchemaError{Column: column}
		}
		index[column] = pos
	}
	return index, nil
}
