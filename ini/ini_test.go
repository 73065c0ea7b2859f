package ini_test

import (
	"testing"

	"github.com/sscotty71/pgbackrest/ini"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Document(t *testing.T) {
	t.Parallel()

	text := "# comment\n" +
		"\n" +
		"[global]\n" +
		"compress-type = zst\n" +
		"  buffer-size=32768  \n" +
		"\n" +
		"[db:restore]\n" +
		"db-include=one\n" +
		"db-include=two\n" +
		"# trailing comment\n" +
		"[global]\n" +
		"process-max=4\n"

	doc, err := ini.Parse(text)
	require.NoError(t, err)

	assert.Equal(t, []string{"global", "db:restore"}, doc.Sections())
	assert.Equal(t, []string{"compress-type", "buffer-size", "process-max"}, doc.Keys("global"))

	assert.Equal(t, "zst", doc.Get("global", "compress-type"))
	assert.Equal(t, "32768", doc.Get("global", "buffer-size"))
	assert.False(t, doc.IsList("global", "buffer-size"))

	assert.True(t, doc.IsList("db:restore", "db-include"))
	assert.Equal(t, []string{"one", "two"}, doc.GetList("db:restore", "db-include"))

	assert.True(t, doc.Contains("global", "process-max"))
	assert.False(t, doc.Contains("global", "missing"))
}

func TestParse_ValueWhitespace(t *testing.T) {
	t.Parallel()

	doc, err := ini.Parse("[global]\nrepo1-host-user = backup user \n")
	require.NoError(t, err)

	assert.Equal(t, "backup user", doc.Get("global", "repo1-host-user"))
}

func TestParse_EmptyValue(t *testing.T) {
	t.Parallel()

	doc, err := ini.Parse("[global]\nlog-path=\n")
	require.NoError(t, err)

	assert.True(t, doc.Contains("global", "log-path"))
	assert.Equal(t, "", doc.Get("global", "log-path"))
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	doc, err := ini.Parse("")
	require.NoError(t, err)

	assert.Empty(t, doc.Sections())
	assert.Nil(t, doc.Keys("global"))
	assert.Nil(t, doc.GetList("global", "anything"))
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "key outside section",
			text:     "compress-type=gz\n[global]\n",
			expected: "key/value found outside of section at line 1",
		},
		{
			name:     "unterminated section",
			text:     "[global\n",
			expected: "section should end with ] at line 1",
		},
		{
			name:     "empty section name",
			text:     "# header\n[]\n",
			expected: "section is zero-length at line 2",
		},
		{
			name:     "missing equals",
			text:     "[global]\ncompress-type\n",
			expected: "missing '=' in key/value at line 2",
		},
		{
			name:     "empty key",
			text:     "[global]\n =gz\n",
			expected: "key is zero-length at line 2",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := ini.Parse(testCase.text)
			require.ErrorIs(t, err, ini.ErrFormat)
			assert.ErrorContains(t, err, testCase.expected)
		})
	}
}
