package corpus

import (
	"fmt"
	"io"
	"os"

	"github.com/jsphweid/fictadex/model"
	"gopkg.in/yaml.v3"
)

// corpus file layout:
//
//	works:
//	  - index: 331
//	    title: Non creder, donna
//	    snippets:
//	      - kind: incipit
//	        voices:
//	          - {name: C, notes: "A4:2 G4 F4"}
//	          - {name: T, notes: "D4:2 C4 D4"}
//	      - null
type fileVoice struct {
	Name  string `yaml:"name"`
	Notes string `yaml:"notes"`
}

type fileSnippet struct {
	Kind   model.SnippetKind `yaml:"kind"`
	Voices []fileVoice       `yaml:"voices"`
}

type fileWork struct {
	Index    int            `yaml:"index"`
	Title    string         `yaml:"title"`
	Snippets []*fileSnippet `yaml:"snippets"`
}

type fileCorpus struct {
	Works []fileWork `yaml:"works"`
}

// Decode reads a corpus document.
func Decode(r io.Reader) ([]*model.Work, error) {
	var doc fileCorpus
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decoding corpus: %w", err)
	}

	seen := make(map[int]bool, len(doc.Works))
	works := make([]*model.Work, 0, len(doc.Works))
	for _, fw := range doc.Works {
		if seen[fw.Index] {
			return nil, fmt.Errorf("piece %d appears twice", fw.Index)
		}
		seen[fw.Index] = true

		snippets, err := decodeSnippets(fw.Snippets)
		if err != nil {
			return nil, fmt.Errorf("piece %d: %w", fw.Index, err)
		}
		works = append(works, &model.Work{Index: fw.Index, Title: fw.Title, Snippets: snippets})
	}
	return works, nil
}

// decodeSnippets keeps nil entries: a work may have a hole where a cadence
// was never transcribed.
func decodeSnippets(raw []*fileSnippet) ([]*model.Snippet, error) {
	res := make([]*model.Snippet, len(raw))
	for i, fs := range raw {
		if fs == nil {
			continue
		}
		switch fs.Kind {
		case model.Incipit, model.CadenceA, model.CadenceB:
		default:
			return nil, fmt.Errorf("snippet %d: unknown kind %q", i, fs.Kind)
		}
		s := &model.Snippet{Kind: fs.Kind}
		for _, v := range fs.Voices {
			seq, err := ParseVoice(v.Name, v.Notes)
			if err != nil {
				return nil, fmt.Errorf("snippet %d: %w", i, err)
			}
			s.Voices = append(s.Voices, seq)
		}
		res[i] = s
	}
	return res, nil
}

func encodeSnippets(snippets []*model.Snippet) []*fileSnippet {
	res := make([]*fileSnippet, len(snippets))
	for i, s := range snippets {
		if s == nil {
			continue
		}
		fs := &fileSnippet{Kind: s.Kind}
		for _, v := range s.Voices {
			fs.Voices = append(fs.Voices, fileVoice{Name: v.Name, Notes: FormatVoice(v)})
		}
		res[i] = fs
	}
	return res
}

// Encode writes works in the format Decode reads.
func Encode(w io.Writer, works []*model.Work) error {
	doc := fileCorpus{Works: make([]fileWork, len(works))}
	for i, work := range works {
		doc.Works[i] = fileWork{Index: work.Index, Title: work.Title, Snippets: encodeSnippets(work.Snippets)}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding corpus: %w", err)
	}
	return enc.Close()
}

func LoadWorks(path string) ([]*model.Work, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	works, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return works, nil
}

// LoadFile reads a corpus file into a Memory source.
func LoadFile(path string) (*Memory, error) {
	works, err := LoadWorks(path)
	if err != nil {
		return nil, err
	}
	return NewMemory(works...), nil
}
