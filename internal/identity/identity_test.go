package identity

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGUID(t *testing.T) {
	t.Run("is deterministic", func(t *testing.T) {
		fields := []string{"What is the capital of France?", "Paris"}
		assert.Equal(t, GUID(fields), GUID([]string{"What is the capital of France?", "Paris"}))
	})

	t.Run("matches known values", func(t *testing.T) {
		testCases := []struct {
			fields   []string
			expected string
		}{
			{fields: []string{""}, expected: "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262"},
			{fields: []string{"abc"}, expected: "6437b3ac38465133ffb63b75273a8db548c558465d79db03fd359c6cd5bd9d85"},
			{fields: []string{"Question", "Answer"}, expected: "abfa8b02855c4c66e539cb021cc2a6a7ed05cb8b8ae829b590366a92db1c2145"},
			{fields: []string{"What is the capital of France?", "Paris"}, expected: "b3d9f929363079e0cb855199c1ed194f17ca2fdc762792c0e12d06570b68d260"},
		}
		for _, tc := range testCases {
			assert.Equal(t, tc.expected, GUID(tc.fields), "fields %q", tc.fields)
		}
	})

	t.Run("is 64 hex characters", func(t *testing.T) {
		guid := GUID([]string{"Q", "A"})
		require.Len(t, guid, 64)
		_, err := hex.DecodeString(guid)
		assert.NoError(t, err)
	})

	t.Run("field boundaries matter", func(t *testing.T) {
		assert.NotEqual(t, GUID([]string{"ab", "c"}), GUID([]string{"a", "bc"}))
	})

	t.Run("different fields do not collide", func(t *testing.T) {
		rng := rand.New(rand.NewSource(42))
		seen := make(map[string][]string)
		for i := 0; i < 20000; i++ {
			fields := []string{randomString(rng), randomString(rng), strconv.Itoa(i)}
			guid := GUID(fields)
			if prev, ok := seen[guid]; ok {
				t.Fatalf("guid %q shared by %v and %v", guid, prev, fields)
			}
			seen[guid] = fields
		}
	})
}

func randomString(rng *rand.Rand) string {
	b := make([]byte, 1+rng.Intn(24))
	for i := range b {
		b[i] = byte(' ' + rng.Intn(95))
	}
	return string(b)
}

func TestStripHTMLMedia(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain", input: "Paris", expected: "Paris"},
		{name: "tags", input: "<b>Paris</b><br/>", expected: "Paris"},
		{name: "entities", input: "Tom&nbsp;&amp;&nbsp;Jerry", expected: "Tom & Jerry"},
		{name: "comment", input: "a<!-- hidden -->b", expected: "ab"},
		{name: "style and script", input: "<style>.x{}</style>x<script>alert(1)</script>", expected: "x"},
		{name: "image keeps file name", input: `see <img src="map.png">`, expected: "see  map.png "},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, StripHTMLMedia(tc.input))
		})
	}
}

func TestChecksum(t *testing.T) {
	sum := sha1.Sum([]byte("Paris"))
	expected, err := strconv.ParseInt(hex.EncodeToString(sum[:])[:8], 16, 64)
	require.NoError(t, err)

	assert.Equal(t, expected, Checksum("Paris"))
	assert.Equal(t, Checksum("Paris"), Checksum("<b>Paris</b>"))
	assert.NotEqual(t, Checksum("Paris"), Checksum("London"))

	for i := 0; i < 100; i++ {
		c := Checksum(fmt.Sprintf("field %d", i))
		assert.GreaterOrEqual(t, c, int64(0))
		assert.LessOrEqual(t, c, int64(0xffffffff))
	}
}
