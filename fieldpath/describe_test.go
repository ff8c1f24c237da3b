package fieldpath_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/bookshelf/fieldpath"
)

type key struct {
	ID string `db:"id"`
}

type owner struct {
	First string `db:"first"`
	Last  string `db:"last"`
}

type level int

func (l level) MarshalText() ([]byte, error) {
	return []byte("level"), nil
}

type audit struct {
	CreatedAt time.Time `db:"created_at"`
}

type record struct {
	audit
	Key       key        `db:"key"`
	Owner     owner      `db:"owner"`
	Title     string     `db:"title"`
	Level     level      `db:"level"`
	Published *time.Time `db:"published"`
	Renamed   string     `db:"renamed" column:"other_name"`
	Untagged  int
	Ignored   string `db:"-"`
	internal  string //nolint:unused
}

func Test_Describe_Struct(t *testing.T) {
	root, err := fieldpath.Describe("record", &record{})
	require.NoError(t, err)

	fields, err := fieldpath.Collect(root)
	require.NoError(t, err)

	assert.Equal(t,
		[]string{
			"record.created_at",
			"record.title",
			"record.level",
			"record.published",
			"record.renamed",
			"record.untagged",
			"record.key.id",
			"record.owner.first",
			"record.owner.last",
		},
		fields.Paths(),
	)

	assert.Equal(t,
		[]string{
			"created_at",
			"title",
			"level",
			"published",
			"other_name",
			"untagged",
			"key",
			"owner_first",
			"owner_last",
		},
		fields.Columns(),
	)
}

func Test_Describe_Rejects_Unusable_Types(t *testing.T) {
	type withFunc struct {
		Callback func() `db:"callback"`
	}

	type selfReferencing struct {
		Name string           `db:"name"`
		Next *selfReferencing `db:"next"`
	}

	tests := []struct {
		name   string
		entity any
	}{
		{name: "nil", entity: nil},
		{name: "not_a_struct", entity: 42},
		{name: "func_field", entity: withFunc{}},
		{name: "self_reference", entity: selfReferencing{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			root, err := fieldpath.Describe("entity", tc.entity)

			assert.ErrorIs(t, err, fieldpath.ErrIntrospection)
			assert.Nil(t, root)
		})
	}
}

func Test_Describe_Requires_A_Name(t *testing.T) {
	_, err := fieldpath.Describe("", record{})

	assert.ErrorIs(t, err, fieldpath.ErrIntrospection)
}

func Test_Describe_Empty_Struct(t *testing.T) {
	root, err := fieldpath.Describe("empty", struct{}{})
	require.NoError(t, err)

	fields, err := fieldpath.Collect(root)

	require.NoError(t, err)
	assert.Empty(t, fields)
}
