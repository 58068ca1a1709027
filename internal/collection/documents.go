package collection

import (
	"strconv"

	"github.com/conorfennell/knolpack/internal/domain"
	"github.com/conorfennell/knolpack/internal/template"
)

// Fixed values of the col row for schema version 11.
const (
	SchemaVersion     = 11
	collectionCreated = 1411124400
	collectionMod     = 1425279151694
	schemaMod         = 1425279151690
	defaultDeckID     = 1
	defaultConfID     = 1
	defaultModelID    = "1425279151691"
)

// usnUnsynced marks rows the receiving application has never synced.
const usnUnsynced = -1

type fieldEntry struct {
	Name   string `json:"name"`
	Ord    int    `json:"ord"`
	Font   string `json:"font"`
	Size   int    `json:"size"`
	RTL    bool   `json:"rtl"`
	Sticky bool   `json:"sticky"`
	Media  []any  `json:"media"`
}

type templateEntry struct {
	Name  string `json:"name"`
	Ord   int    `json:"ord"`
	Qfmt  string `json:"qfmt"`
	Afmt  string `json:"afmt"`
	Bqfmt string `json:"bqfmt"`
	Bafmt string `json:"bafmt"`
	Did   *int64 `json:"did"`
}

type modelEntry struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      int             `json:"type"`
	Mod       int64           `json:"mod"`
	Usn       int             `json:"usn"`
	Sortf     int             `json:"sortf"`
	Did       int64           `json:"did"`
	Tmpls     []templateEntry `json:"tmpls"`
	Flds      []fieldEntry    `json:"flds"`
	CSS       string          `json:"css"`
	LatexPre  string          `json:"latexPre"`
	LatexPost string          `json:"latexPost"`
	LatexSvg  bool            `json:"latexsvg"`
	Req       [][]any         `json:"req"`
	Tags      []any           `json:"tags"`
	Vers      []any           `json:"vers"`
}

type deckEntry struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Desc      string `json:"desc"`
	Mod       int64  `json:"mod"`
	Usn       int    `json:"usn"`
	Collapsed bool   `json:"collapsed"`
	Conf      int    `json:"conf"`
	Dyn       int    `json:"dyn"`
	ExtendNew int    `json:"extendNew"`
	ExtendRev int    `json:"extendRev"`
	LrnToday  [2]int `json:"lrnToday"`
	NewToday  [2]int `json:"newToday"`
	RevToday  [2]int `json:"revToday"`
	TimeToday [2]int `json:"timeToday"`
}

type newConf struct {
	Bury          bool  `json:"bury"`
	Delays        []int `json:"delays"`
	InitialFactor int   `json:"initialFactor"`
	Ints          []int `json:"ints"`
	Order         int   `json:"order"`
	PerDay        int   `json:"perDay"`
	Separate      bool  `json:"separate"`
}

type lapseConf struct {
	Delays      []int   `json:"delays"`
	LeechAction int     `json:"leechAction"`
	LeechFails  int     `json:"leechFails"`
	MinInt      int     `json:"minInt"`
	Mult        float64 `json:"mult"`
}

type revConf struct {
	Bury     bool    `json:"bury"`
	Ease4    float64 `json:"ease4"`
	Fuzz     float64 `json:"fuzz"`
	IvlFct   float64 `json:"ivlFct"`
	MaxIvl   int     `json:"maxIvl"`
	MinSpace int     `json:"minSpace"`
	PerDay   int     `json:"perDay"`
}

type deckConf struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Mod      int64     `json:"mod"`
	Usn      int       `json:"usn"`
	Autoplay bool      `json:"autoplay"`
	MaxTaken int       `json:"maxTaken"`
	Replayq  bool      `json:"replayq"`
	Timer    int       `json:"timer"`
	New      newConf   `json:"new"`
	Lapse    lapseConf `json:"lapse"`
	Rev      revConf   `json:"rev"`
}

type colConf struct {
	ActiveDecks   []int64 `json:"activeDecks"`
	AddToCur      bool    `json:"addToCur"`
	CollapseTime  int     `json:"collapseTime"`
	CurDeck       int64   `json:"curDeck"`
	CurModel      string  `json:"curModel"`
	DueCounts     bool    `json:"dueCounts"`
	EstTimes      bool    `json:"estTimes"`
	NewBury       bool    `json:"newBury"`
	NewSpread     int     `json:"newSpread"`
	NextPos       int     `json:"nextPos"`
	SortBackwards bool    `json:"sortBackwards"`
	SortType      string  `json:"sortType"`
	TimeLim       int     `json:"timeLim"`
}

func defaultColConf() colConf {
	return colConf{
		ActiveDecks:  []int64{defaultDeckID},
		AddToCur:     true,
		CollapseTime: 1200,
		CurDeck:      defaultDeckID,
		CurModel:     defaultModelID,
		DueCounts:    true,
		EstTimes:     true,
		NewBury:      true,
		NextPos:      1,
		SortType:     "noteFld",
	}
}

func defaultDeckConf() deckConf {
	return deckConf{
		ID:       defaultConfID,
		Name:     "Default",
		Autoplay: true,
		MaxTaken: 60,
		Replayq:  true,
		New: newConf{
			Bury:          true,
			Delays:        []int{1, 10},
			InitialFactor: 2500,
			Ints:          []int{1, 4, 7},
			Order:         1,
			PerDay:        20,
			Separate:      true,
		},
		Lapse: lapseConf{
			Delays:     []int{10},
			LeechFails: 8,
			MinInt:     1,
		},
		Rev: revConf{
			Bury:     true,
			Ease4:    1.3,
			Fuzz:     0.05,
			IvlFct:   1,
			MaxIvl:   36500,
			MinSpace: 1,
			PerDay:   100,
		},
	}
}

func defaultDeck() deckEntry {
	return deckEntry{
		ID:        defaultDeckID,
		Name:      "Default",
		Mod:       collectionMod / 1000,
		Conf:      defaultConfID,
		ExtendNew: 10,
		ExtendRev: 50,
	}
}

func newDeckEntry(d *domain.Deck, mod int64) deckEntry {
	return deckEntry{
		ID:        d.ID(),
		Name:      d.Name(),
		Desc:      d.Description(),
		Mod:       mod,
		Usn:       usnUnsynced,
		Conf:      defaultConfID,
		ExtendRev: 50,
	}
}

func newModelEntry(m *domain.Model, deckID, mod int64) modelEntry {
	entry := modelEntry{
		ID:        strconv.FormatInt(m.ID(), 10),
		Name:      m.Name(),
		Mod:       mod,
		Usn:       usnUnsynced,
		Sortf:     m.SortFieldIndex(),
		Did:       deckID,
		CSS:       m.CSS(),
		LatexPre:  m.LatexPre(),
		LatexPost: m.LatexPost(),
		Tmpls:     []templateEntry{},
		Flds:      []fieldEntry{},
		Req:       [][]any{},
		Tags:      []any{},
		Vers:      []any{},
	}
	if m.Kind() == domain.Cloze {
		entry.Type = 1
	}
	for i, f := range m.Fields() {
		entry.Flds = append(entry.Flds, fieldEntry{
			Name: f.Name, Ord: i, Font: f.Font, Size: f.Size, RTL: f.RTL, Sticky: f.Sticky, Media: []any{},
		})
	}
	for i, t := range m.Templates() {
		entry.Tmpls = append(entry.Tmpls, templateEntry{
			Name: t.Name, Ord: i, Qfmt: t.QuestionFormat, Afmt: t.AnswerFormat,
			Bqfmt: t.BrowserQuestionFormat, Bafmt: t.BrowserAnswerFormat,
		})
	}
	for i, r := range m.Requirements() {
		entry.Req = append(entry.Req, requirementEntry(i, r))
	}
	return entry
}

// requirementEntry encodes a requirement as [ord, "all"|"any", [field ords]]. A template
// that always renders is written as "all" over no fields, which every note satisfies.
func requirementEntry(ord int, r template.Requirement) []any {
	fields := append([]int{}, r.Fields...)
	kind := r.Kind.String()
	if r.Kind == template.RequireNone {
		kind = template.RequireAll.String()
	}
	return []any{ord, kind, fields}
}
