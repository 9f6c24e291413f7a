package corpus

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
)

// Document is one input text with an optional caller-supplied identifier
type Document struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Texts returns the text of every document, in order.
func Texts(docs []Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.Text
	}
	return out
}

// Loader reads corpora from files
type Loader struct {
	log *logrus.Entry
}

// NewLoader creates a loader that reports skipped input on log.
func NewLoader(log *logrus.Entry) *Loader {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = logrus.NewEntry(l)
	}
	return &Loader{log: log.WithField("component", "corpus")}
}

// Load reads path according to its extension. A directory loads each
// regular file it contains in name order.
func (l *Loader) Load(path string) ([]Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return l.loadFile(path)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", path, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var docs []Document
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		loaded, err := l.loadFile(filepath.Join(path, e.Name()))
		if err != nil {
			return nil, err
		}
		docs = append(docs, loaded...)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no documents found in %s", path)
	}
	return docs, nil
}

func (l *Loader) loadFile(path string) ([]Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl":
		return l.LoadJSONL(path)
	case ".html", ".htm":
		return l.LoadHTML(path)
	default:
		return l.LoadLines(path)
	}
}

// LoadLines reads one document per non-blank line. Lines are kept verbatim.
func (l *Loader) LoadLines(path string) ([]Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var docs []Document
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		docs = append(docs, Document{
			ID:   fmt.Sprintf("%s:%d", filepath.Base(path), lineNo),
			Text: line,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return docs, nil
}

// LoadJSONL loads documents from a JSONL file with a "text" field per line.
// Malformed lines are skipped.
func (l *Loader) LoadJSONL(path string) ([]Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}

	var docs []Document
	lines := strings.Split(string(data), "\n")

	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var doc Document
		if err := json.Unmarshal([]byte(line), &doc); err != nil {
			l.log.WithFields(logrus.Fields{
				"path": path,
				"line": i + 1,
			}).WithError(err).Warn("skipping malformed JSON line")
			continue
		}
		if doc.ID == "" {
			doc.ID = fmt.Sprintf("%s:%d", filepath.Base(path), i+1)
		}
		docs = append(docs, doc)
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("no valid items found in %s", path)
	}

	return docs, nil
}

// LoadHTML reads each file as one document made of its visible text.
func (l *Loader) LoadHTML(paths ...string) ([]Document, error) {
	docs := make([]Document, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read file %s: %w", path, err)
		}
		text, err := ExtractText(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("parse html %s: %w", path, err)
		}
		docs = append(docs, Document{ID: filepath.Base(path), Text: text})
	}
	return docs, nil
}

// ExtractText returns the text nodes of an HTML document joined by single
// spaces, ignoring script and style content.
func ExtractText(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}

	var parts []string
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			if s := strings.TrimSpace(n.Data); s != "" {
				parts = append(parts, s)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(doc)

	return strings.Join(parts, " "), nil
}
