package sqlcheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckEmptyInput(t *testing.T) {
	c := New()

	for _, in := range []string{"", "   ", "\n\t\n"} {
		res := c.Check(in)
		assert.False(t, res.Valid)
		assert.Equal(t, "Empty or invalid SQL.", res.Message)
	}
}

func TestCheckCommentOnlyInput(t *testing.T) {
	c := New()

	res := c.Check("-- just a comment\n/* and a block */")
	assert.False(t, res.Valid)
	assert.Equal(t, "Empty or invalid SQL.", res.Message)
}

func TestCheckAcceptsDML(t *testing.T) {
	c := New()

	valid := []string{
		"SELECT * FROM emp",
		"select id from dual",
		"INSERT INTO t (id) VALUES (1)",
		"UPDATE t SET x = 1 WHERE id = 2",
		"DELETE FROM t WHERE id = 3",
		"WITH cte AS (SELECT 1 AS n) SELECT n FROM cte",
		"SELECT 1;\nSELECT 2;",
	}

	for _, in := range valid {
		res := c.Check(in)
		assert.True(t, res.Valid, "expected %q to be accepted: %s", in, res.Message)
		assert.Equal(t, "SQL syntax looks valid.", res.Message)
	}
}

func TestCheckRejectsDDL(t *testing.T) {
	c := New()

	res := c.Check("CREATE TABLE t (id INT)")
	assert.False(t, res.Valid)
	assert.Equal(t, "Unsupported SQL statement type: CREATE. Only DML is allowed.", res.Message)

	res = c.Check("DROP TABLE t")
	assert.False(t, res.Valid)
	assert.Contains(t, res.Message, "DROP")
}

func TestCheckRejectsMixedScript(t *testing.T) {
	c := New()

	res := c.Check("SELECT 1;\nTRUNCATE TABLE t;")
	assert.False(t, res.Valid)
	assert.Contains(t, res.Message, "TRUNCATE")
}

func TestCheckCustomAllowlist(t *testing.T) {
	c := New("SELECT")

	assert.True(t, c.Check("SELECT 1").Valid)
	assert.False(t, c.Check("INSERT INTO t VALUES (1)").Valid)
}

func TestCheckLeadingComments(t *testing.T) {
	c := New()

	res := c.Check("-- migrated from Oracle\nSELECT * FROM emp")
	assert.True(t, res.Valid, res.Message)
}

func TestSplitStatements(t *testing.T) {
	stmts := SplitStatements("SELECT 1; SELECT 2;")
	assert.Equal(t, []string{"SELECT 1", "SELECT 2"}, stmts)
}

func TestSplitStatementsIgnoresQuotedSemicolons(t *testing.T) {
	stmts := SplitStatements("SELECT 'a;b' FROM t; SELECT 2")
	assert.Equal(t, []string{"SELECT 'a;b' FROM t", "SELECT 2"}, stmts)
}

func TestSplitStatementsHandlesEscapedQuotes(t *testing.T) {
	stmts := SplitStatements("SELECT 'it''s; fine' FROM t")
	assert.Equal(t, []string{"SELECT 'it''s; fine' FROM t"}, stmts)
}

func TestSplitStatementsStripsComments(t *testing.T) {
	stmts := SplitStatements("SELECT 1 -- trailing; not a split\n; SELECT 2 /* block; comment */")
	assert.Equal(t, []string{"SELECT 1", "SELECT 2"}, stmts)
}

func TestStatementType(t *testing.T) {
	assert.Equal(t, "SELECT", StatementType("select * from t"))
	assert.Equal(t, "WITH", StatementType("WITH x AS (SELECT 1) SELECT * FROM x"))
	assert.Equal(t, "CREATE", StatementType("CREATE TABLE t (id INT)"))
	assert.Equal(t, "", StatementType("   "))
	assert.Equal(t, "", StatementType("123"))
}
