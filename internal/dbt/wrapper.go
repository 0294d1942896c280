package dbt

import "fmt"

// Materialization is the deployment strategy a generated model asks dbt for.
type Materialization string

const (
	MaterializationView        Materialization = "view"
	MaterializationTable       Materialization = "table"
	MaterializationIncremental Materialization = "incremental"
)

// DefaultUniqueKey is used for incremental models when no key is given.
const DefaultUniqueKey = "id"

// migrationTag marks generated models so they can be selected together in dbt.
const migrationTag = "oracle_migration"

// ParseMaterialization validates a user-supplied materialization name.
func ParseMaterialization(s string) (Materialization, error) {
	switch Materialization(s) {
	case MaterializationView, MaterializationTable, MaterializationIncremental:
		return Materialization(s), nil
	}
	return "", fmt.Errorf("unknown materialization %q (expected view, table or incremental)", s)
}

// Wrap prepends the dbt config directive for the given materialization to
// sql. The emitted directive shape is consumed verbatim by dbt, so it must
// not be reformatted. Unknown materializations return sql unchanged, and
// uniqueKey only applies to incremental models, defaulting to "id".
func Wrap(sql string, kind Materialization, uniqueKey string) string {
	switch kind {
	case MaterializationView, MaterializationTable:
		return fmt.Sprintf("{{ config(materialized='%s') }}\n\n%s", kind, sql)
	case MaterializationIncremental:
		if uniqueKey == "" {
			uniqueKey = DefaultUniqueKey
		}
		return fmt.Sprintf(
			"{{ config(materialized='incremental', unique_key='%s', tags=['%s']) }}\n%s\n\n{%% if is_incremental() %%}\n-- Add incremental filter logic here\n{%% endif %%}",
			uniqueKey, migrationTag, sql)
	default:
		return sql
	}
}
