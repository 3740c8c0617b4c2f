package presentation

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/tagsearch/internal/searchurl"
	"github.com/zjrosen/tagsearch/internal/testutil"
)

func TestFromDomainSearches_ComposesURL(t *testing.T) {
	dtos := FromDomainSearches(testutil.Scenario(), searchurl.DefaultPrefix)

	require.Len(t, dtos, 3)
	require.Equal(t, SearchDTO{
		Tag:   "news",
		Query: "golang release",
		URL:   "https://twitter.com/search?q=golang%20release",
	}, dtos[0])
}

func TestFormatSearches_JSON(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)

	require.NoError(t, f.FormatSearches([]SearchDTO{{Tag: "art", Query: "monet", URL: "u"}}))
	require.JSONEq(t, `[{"tag":"art","query":"monet","url":"u"}]`, buf.String())
}

func TestFormatSearches_EmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(&buf).FormatSearches(nil))
	require.JSONEq(t, `[]`, buf.String())
}

func TestFormatSearchesText_Aligned(t *testing.T) {
	var buf bytes.Buffer
	err := NewFormatter(&buf).FormatSearchesText([]SearchDTO{
		{Tag: "art", Query: "impressionism"},
		{Tag: "Sports", Query: "world cup"},
	})
	require.NoError(t, err)
	require.Equal(t, "art     impressionism\nSports  world cup\n", buf.String())
}
