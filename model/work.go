package model

type SnippetKind string

const (
	Incipit  SnippetKind = "incipit"
	CadenceA SnippetKind = "cadenceA"
	CadenceB SnippetKind = "cadenceB"
)

// Snippet is a short excerpt of a work with its voices aligned from offset 0.
type Snippet struct {
	Kind   SnippetKind
	Voices []*Sequence
}

func (s *Snippet) Voice(name string) *Sequence {
	for _, v := range s.Voices {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// Pair returns the cantus and tenor. Snippets that don't name them fall back
// to the first two voices; a third voice is ignored either way.
func (s *Snippet) Pair() (*Sequence, *Sequence, bool) {
	if s == nil || len(s.Voices) < 2 {
		return nil, nil, false
	}
	c, t := s.Voice("C"), s.Voice("T")
	if c != nil && t != nil {
		return c, t, true
	}
	return s.Voices[0], s.Voices[1], true
}

func (s *Snippet) Clone() *Snippet {
	if s == nil {
		return nil
	}
	c := &Snippet{Kind: s.Kind, Voices: make([]*Sequence, len(s.Voices))}
	for i, v := range s.Voices {
		c.Voices[i] = v.Clone()
	}
	return c
}

type Work struct {
	Index    int
	Title    string
	Snippets []*Snippet
}

func (w *Work) snippet(kind SnippetKind) *Snippet {
	for _, s := range w.Snippets {
		if s != nil && s.Kind == kind {
			return s
		}
	}
	return nil
}

func (w *Work) Incipit() *Snippet {
	return w.snippet(Incipit)
}

func (w *Work) CadenceA() *Snippet {
	return w.snippet(CadenceA)
}

func (w *Work) Clone() *Work {
	c := &Work{Index: w.Index, Title: w.Title, Snippets: make([]*Snippet, len(w.Snippets))}
	for i, s := range w.Snippets {
		c.Snippets[i] = s.Clone()
	}
	return c
}
