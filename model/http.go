package model

type VoiceBody struct {
	Name string `json:"name"`
	// same notation as the corpus file
	Notes string `json:"notes"`
}

type AnalyzeRequestBody struct {
	Voices []VoiceBody `json:"voices"`
}

type NoteResult struct {
	Note      string      `json:"note"`
	Ficta     *Accidental `json:"ficta,omitempty"`
	Editorial *Accidental `json:"editorial,omitempty"`
	Rules     uint8       `json:"rules,omitempty"`
	Color     string      `json:"color,omitempty"`
	Verdict   string      `json:"verdict,omitempty"`

	// harmonic interval with no ficta, the editor's, and the rules'
	Normal            string `json:"normal"`
	EditorialInterval string `json:"editorialInterval"`
	RuleInterval      string `json:"ruleInterval"`
}

type VoiceResult struct {
	Name         string       `json:"name"`
	Notes        []NoteResult `json:"notes"`
	WithoutFicta Profile      `json:"withoutFicta"`
	Editorial    Profile      `json:"editorial"`
	Rules        Profile      `json:"rules"`
}

type AnalyzeResponse struct {
	Kind       string         `json:"kind,omitempty"`
	Voices     []VoiceResult  `json:"voices"`
	RuleCounts map[string]int `json:"ruleCounts"`
	Better     int            `json:"better"`
	Worse      int            `json:"worse"`
	Neutral    int            `json:"neutral"`
}

type SkippedSnippet struct {
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

type WorkResponse struct {
	Index    int               `json:"index"`
	Title    string            `json:"title"`
	Snippets []AnalyzeResponse `json:"snippets"`
	Skipped  []SkippedSnippet  `json:"skipped,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
