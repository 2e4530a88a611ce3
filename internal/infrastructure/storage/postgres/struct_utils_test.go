package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gestistock/internal/core/entity"
)

type testCatalog struct {
	entity.Base

	Designation string `db:"designation" json:"designation"`
	Description string `db:"description" json:"description"`
	Internal    string `db:"-" json:"-"`
	Untagged    string
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[testCatalog]()

	assert.Contains(t, cols, "id")
	assert.Contains(t, cols, "designation")
	assert.Contains(t, cols, "description")
	assert.NotContains(t, cols, "-")
	assert.Len(t, cols, 3)
}

func TestExtractDBColumnsPointer(t *testing.T) {
	assert.Equal(t, ExtractDBColumns[testCatalog](), ExtractDBColumns[*testCatalog]())
}

func TestStructToMap(t *testing.T) {
	c := &testCatalog{
		Base:        entity.NewBase(),
		Designation: "Kilogramme",
		Description: "mass",
		Internal:    "hidden",
	}

	m := StructToMap(c)

	assert.Equal(t, c.ID, m["id"])
	assert.Equal(t, "Kilogramme", m["designation"])
	assert.Equal(t, "mass", m["description"])
	assert.NotContains(t, m, "-")
	assert.Len(t, m, 3)
}

func TestStructToMapNonStruct(t *testing.T) {
	assert.Nil(t, StructToMap(42))
}
