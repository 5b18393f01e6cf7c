package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/dtnitsch/wiki-outline/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRejectsUnparseableBodies(t *testing.T) {
	p := &Parser{}

	tests := []struct {
		name    string
		body    []byte
		wantErr error
	}{
		{name: "empty body", body: nil, wantErr: ErrEmptyBody},
		{name: "whitespace only", body: []byte(" \n\t "), wantErr: ErrEmptyBody},
		{name: "binary garbage", body: []byte{0x00, 0x01, 0xff, 0xfe, 0x00, 0x89, 'P', 'N', 'G'}, wantErr: ErrNotTextual},
		{name: "png header", body: []byte("\x89PNG\x0d\x0a\x1a\x0a\x00\x00\x00\x0dIHDR"), wantErr: ErrNotTextual},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := p.Parse(tt.body)
			assert.Nil(t, doc)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
		})
	}
}

func TestHeadingsDocumentOrder(t *testing.T) {
	p := &Parser{}
	doc, err := p.Parse([]byte(`<html><body>
		<h2>History</h2>
		<div><section><h3>Ancient</h3></section></div>
		<h1>France</h1>
		<h6>Tiny</h6>
	</body></html>`))
	require.NoError(t, err)

	assert.Equal(t, []models.Heading{
		{Level: 2, Text: "History"},
		{Level: 3, Text: "Ancient"},
		{Level: 1, Text: "France"},
		{Level: 6, Text: "Tiny"},
	}, Headings(doc))
}

func TestHeadingsLevelIgnoresNesting(t *testing.T) {
	p := &Parser{}
	doc, err := p.Parse([]byte(`<div><div><div><div><h1>Deep</h1></div></div></div></div><h4>Shallow</h4>`))
	require.NoError(t, err)

	headings := Headings(doc)
	require.Len(t, headings, 2)
	assert.Equal(t, 1, headings[0].Level)
	assert.Equal(t, 4, headings[1].Level)
}

func TestHeadingsDropsBlankText(t *testing.T) {
	p := &Parser{}
	doc, err := p.Parse([]byte(`<h1>  </h1><h2>
	</h2><h3><span> </span></h3><h2>  Economy <span>[edit]</span> </h2>`))
	require.NoError(t, err)

	assert.Equal(t, 4, CountHeadings(doc))
	assert.Equal(t, []models.Heading{{Level: 2, Text: "Economy [edit]"}}, Headings(doc))
}

func TestHeadingsNone(t *testing.T) {
	p := &Parser{}
	doc, err := p.Parse([]byte(`<p>plain paragraph</p>`))
	require.NoError(t, err)
	assert.Empty(t, Headings(doc))
}

func TestParseArticleSkipsNavigation(t *testing.T) {
	p := &Parser{}
	paragraph := strings.Repeat("France is a country in Western Europe with a long and varied history. ", 20)
	body := `<html><head><title>France</title></head><body>
		<nav><h2>Navigation menu</h2><ul><li><a href="/a">A</a></li></ul></nav>
		<article>
			<h2>History</h2><p>` + paragraph + `</p>
			<h2>Geography</h2><p>` + paragraph + `</p>
		</article>
		<footer><h3>Footer links</h3></footer>
	</body></html>`

	doc, err := p.ParseArticle("https://en.wikipedia.org/wiki/France", []byte(body))
	require.NoError(t, err)

	var texts []string
	for _, h := range Headings(doc) {
		texts = append(texts, h.Text)
	}
	assert.Contains(t, texts, "History")
	assert.Contains(t, texts, "Geography")
	assert.NotContains(t, texts, "Navigation menu")
}

func TestParseArticleRejectsBinary(t *testing.T) {
	p := &Parser{}
	_, err := p.ParseArticle("https://en.wikipedia.org/wiki/France", []byte{0x00, 0x00, 0x01})
	assert.ErrorIs(t, err, ErrNotTextual)
}
