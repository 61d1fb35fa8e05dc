// Package docs reads compiler-generated XML documentation files and looks up
// member summaries by documentation ID, e.g. M:System.Net.Http.HttpClient.CancelPendingRequests
package docs

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/JeremyTCD/QuickWrap/internal/errors"
	"github.com/JeremyTCD/QuickWrap/internal/models"
)

type docFile struct {
	XMLName xml.Name    `xml:"doc"`
	Members []docMember `xml:"members>member"`
}

type docMember struct {
	Name    string `xml:"name,attr"`
	Summary struct {
		Inner string `xml:",innerxml"`
	} `xml:"summary"`
}

// Lookup holds summaries keyed by documentation ID. A nil Lookup finds
// nothing.
type Lookup struct {
	summaries map[string][]string
}

// Load reads the documentation file at path
func Load(path string) (*Lookup, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapFileSystemError("open", path, err)
	}
	defer file.Close()

	lookup, err := Decode(file)
	if err != nil {
		return nil, errors.WrapFileSystemError("decode", path, err)
	}
	return lookup, nil
}

// Decode parses a documentation document
func Decode(r io.Reader) (*Lookup, error) {
	var doc docFile
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid documentation XML: %w", err)
	}

	lookup := &Lookup{summaries: make(map[string][]string, len(doc.Members))}
	for _, m := range doc.Members {
		if lines := summaryLines(m.Summary.Inner); len(lines) > 0 {
			lookup.summaries[m.Name] = lines
		}
	}
	return lookup, nil
}

// Summary returns the summary lines of the member with the given ID
func (l *Lookup) Summary(id string) []string {
	if l == nil {
		return nil
	}
	return l.summaries[id]
}

// Len returns the number of documented members
func (l *Lookup) Len() int {
	if l == nil {
		return 0
	}
	return len(l.summaries)
}

func summaryLines(inner string) []string {
	var lines []string
	for _, line := range strings.Split(inner, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// TypeID returns the documentation ID of a type
func TypeID(t models.TypeRef) string {
	return "T:" + declaringName(t)
}

// PropertyID returns the documentation ID of a property
func PropertyID(declaring models.TypeRef, name string) string {
	return "P:" + declaringName(declaring) + "." + name
}

// EventID returns the documentation ID of an event
func EventID(declaring models.TypeRef, name string) string {
	return "E:" + declaringName(declaring) + "." + name
}

// MethodID returns the documentation ID of a method. Method generic
// parameters are referenced by position as ``0, ``1 and so on.
func MethodID(declaring models.TypeRef, m models.MethodDescriptor) string {
	var b strings.Builder
	b.WriteString("M:" + declaringName(declaring) + "." + m.Name)
	if len(m.TypeParameters) > 0 {
		b.WriteString("``" + strconv.Itoa(len(m.TypeParameters)))
	}
	if len(m.Parameters) > 0 {
		params := make([]string, len(m.Parameters))
		for i, p := range m.Parameters {
			params[i] = parameterName(p.Type, m.TypeParameters)
		}
		b.WriteString("(" + strings.Join(params, ",") + ")")
	}
	return b.String()
}

// declaringName is the full name with the arity marker of an open generic
func declaringName(t models.TypeRef) string {
	name := t.FullName()
	if len(t.Args) > 0 {
		name += "`" + strconv.Itoa(len(t.Args))
	}
	return name
}

func parameterName(t models.TypeRef, methodGenerics []string) string {
	var name string
	if t.IsGenericParameter {
		name = t.Name
		for i, g := range methodGenerics {
			if g == t.Name {
				name = "``" + strconv.Itoa(i)
				break
			}
		}
	} else {
		name = t.FullName()
		if len(t.Args) > 0 {
			args := make([]string, len(t.Args))
			for i, arg := range t.Args {
				args[i] = parameterName(arg, methodGenerics)
			}
			name += "{" + strings.Join(args, ",") + "}"
		}
	}

	switch {
	case t.ArrayRank == 1:
		name += "[]"
	case t.ArrayRank > 1:
		dims := make([]string, t.ArrayRank)
		for i := range dims {
			dims[i] = "0:"
		}
		name += "[" + strings.Join(dims, ",") + "]"
	}
	return name
}
