package dbt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapView(t *testing.T) {
	out := Wrap("SELECT 1", MaterializationView, "")
	assert.Equal(t, "{{ config(materialized='view') }}\n\nSELECT 1", out)
}

func TestWrapTable(t *testing.T) {
	out := Wrap("SELECT * FROM staging", MaterializationTable, "")
	assert.Equal(t, "{{ config(materialized='table') }}\n\nSELECT * FROM staging", out)
}

func TestWrapIncremental(t *testing.T) {
	out := Wrap("SELECT * FROM orders", MaterializationIncremental, "order_id")

	assert.True(t, strings.HasPrefix(out,
		"{{ config(materialized='incremental', unique_key='order_id', tags=['oracle_migration']) }}\n"))
	assert.Contains(t, out, "SELECT * FROM orders")
	assert.True(t, strings.HasSuffix(out,
		"{% if is_incremental() %}\n-- Add incremental filter logic here\n{% endif %}"))
}

func TestWrapIncrementalDefaultUniqueKey(t *testing.T) {
	out := Wrap("SELECT 1", MaterializationIncremental, "")
	assert.Contains(t, out, "unique_key='id'")
	assert.Contains(t, out, "tags=['oracle_migration']")
}

func TestWrapIncrementalExactShape(t *testing.T) {
	out := Wrap("SELECT 1", MaterializationIncremental, "id")
	want := "{{ config(materialized='incremental', unique_key='id', tags=['oracle_migration']) }}\n" +
		"SELECT 1\n" +
		"\n" +
		"{% if is_incremental() %}\n" +
		"-- Add incremental filter logic here\n" +
		"{% endif %}"
	assert.Equal(t, want, out)
}

func TestWrapUnknownKindReturnsInputUnchanged(t *testing.T) {
	out := Wrap("SELECT 1", Materialization("ephemeral"), "")
	assert.Equal(t, "SELECT 1", out)
}

func TestParseMaterialization(t *testing.T) {
	for _, valid := range []string{"view", "table", "incremental"} {
		kind, err := ParseMaterialization(valid)
		require.NoError(t, err)
		assert.Equal(t, Materialization(valid), kind)
	}

	_, err := ParseMaterialization("materialized_view")
	assert.Error(t, err)
}
