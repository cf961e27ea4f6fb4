package checksum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const emptySHA256 = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

func TestSHA256_CalculateRaw(t *testing.T) {
	calc := New()

	assert.Equal(t, emptySHA256, calc.CalculateRaw(nil))

	a := calc.CalculateRaw([]byte("SELECT * FROM users;"))
	b := calc.CalculateRaw([]byte("SELECT  *  FROM  users;"))
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b, "raw checksum sees whitespace")
	assert.Equal(t, a, calc.CalculateRaw([]byte("SELECT * FROM users;")))
}

func TestSHA256_CalculateNormalized(t *testing.T) {
	calc := New()
	assert.Equal(t, emptySHA256, calc.CalculateNormalized([]byte("  -- only a comment\n")))

	equivalent := []string{
		"DELETE FROM users;",
		"delete from users;",
		"DELETE\n\tFROM   users;",
		"-- clean up\nDELETE FROM users; /* done */",
		"/* outer /* nested */ still comment */ DELETE FROM users;",
	}
	base := calc.CalculateNormalized([]byte(equivalent[0]))
	for _, content := range equivalent[1:] {
		assert.Equal(t, base, calc.CalculateNormalized([]byte(content)), "content: %q", content)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"lowercases and collapses", "SELECT  *\nFROM\tUsers;", "select * from users;"},
		{"trims", "  SELECT 1;  \n", "select 1;"},
		{"line comment", "SELECT 1; -- trailing\nSELECT 2;", "select 1; select 2;"},
		{"block comment", "SELECT /* inline */ 1;", "select 1;"},
		{"comment markers inside literal", "SELECT '-- not /* a comment */';", "select '-- not /* a comment */';"},
		{"escaped quote", "SELECT 'it''s -- fine';", "select 'it''s -- fine';"},
		{"dollar quoted body", "DO $$ BEGIN -- kept\nEND $$;", "do $$ begin -- kept end $$;"},
		{"tagged dollar quote", "SELECT $fn$ /* kept */ $fn$;", "select $fn$ /* kept */ $fn$;"},
		{"lone dollar", "SELECT $1 -- param\n;", "select $1 ;"},
		{"unterminated literal", "SELECT 'open", "select 'open"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize(tt.content))
		})
	}
}

func TestFingerprint(t *testing.T) {
	calc := New()

	sql := Fingerprint(calc, "scripts/cleanup.sql", []byte("DELETE FROM users;"))
	reformatted := Fingerprint(calc, "scripts/cleanup.sql", []byte("-- tidy\ndelete   from users;"))
	require.Len(t, sql, 64)
	assert.Equal(t, sql, reformatted, "SQL fingerprints ignore formatting")

	yml := Fingerprint(calc, "users.yml", []byte("users: []"))
	assert.Equal(t, calc.CalculateRaw([]byte("users: []")), yml)
	assert.NotEqual(t, yml, Fingerprint(calc, "users.yml", []byte("users:  []")))
}

func TestIsSQL(t *testing.T) {
	assert.True(t, IsSQL("a.sql"))
	assert.True(t, IsSQL("scripts/B.SQL"))
	assert.True(t, IsSQL("fn.plpgsql"))
	assert.False(t, IsSQL("users.yml"))
	assert.False(t, IsSQL("sql"))
}

func BenchmarkCalculateNormalized(b *testing.B) {
	content := []byte("-- header\nCREATE TABLE users (id int, name text); /* done */\nINSERT INTO users VALUES (1, 'a -- b');\n")
	calc := New()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		calc.CalculateNormalized(content)
	}
}
