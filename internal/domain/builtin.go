package domain

const (
	BasicModelID                 int64 = 1559383000
	BasicAndReversedModelID      int64 = 1485830179
	BasicOptionalReversedModelID int64 = 1382232460
	BasicTypeInTheAnswerModelID  int64 = 1305534440
	ClozeModelID                 int64 = 1122529321
)

const basicCSS = `.card {
 font-family: arial;
 font-size: 20px;
 text-align: center;
 color: black;
 background-color: white;
}
`

const clozeCSS = basicCSS + `
.cloze {
 font-weight: bold;
 color: blue;
}
.nightMode .cloze {
 color: lightblue;
}
`

const answerSeparator = "{{FrontSide}}\n\n<hr id=answer>\n\n"

func arialField(name string) Field {
	f := NewField(name)
	f.Font = "Arial"
	return f
}

// mustModel is only used for the static definitions below.
func mustModel(id int64, name string, fields []Field, templates []Template, opts ...ModelOption) *Model {
	m, err := NewModel(id, name, fields, templates, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// BasicModel has Front/Back fields and one card showing Front.
func BasicModel() *Model {
	return mustModel(BasicModelID, "Basic (knolpack)",
		[]Field{arialField("Front"), arialField("Back")},
		[]Template{{Name: "Card 1", QuestionFormat: "{{Front}}", AnswerFormat: answerSeparator + "{{Back}}"}},
		WithCSS(basicCSS))
}

// BasicAndReversedModel adds a second card asking for Front given Back.
func BasicAndReversedModel() *Model {
	return mustModel(BasicAndReversedModelID, "Basic (and reversed card) (knolpack)",
		[]Field{arialField("Front"), arialField("Back")},
		[]Template{
			{Name: "Card 1", QuestionFormat: "{{Front}}", AnswerFormat: answerSeparator + "{{Back}}"},
			{Name: "Card 2", QuestionFormat: "{{Back}}", AnswerFormat: answerSeparator + "{{Front}}"},
		},
		WithCSS(basicCSS))
}

// BasicOptionalReversedModel only creates the reverse card when "Add Reverse" is filled in.
func BasicOptionalReversedModel() *Model {
	return mustModel(BasicOptionalReversedModelID, "Basic (optional reversed card) (knolpack)",
		[]Field{arialField("Front"), arialField("Back"), arialField("Add Reverse")},
		[]Template{
			{Name: "Card 1", QuestionFormat: "{{Front}}", AnswerFormat: answerSeparator + "{{Back}}"},
			{Name: "Card 2", QuestionFormat: "{{#Add Reverse}}{{Back}}{{/Add Reverse}}", AnswerFormat: answerSeparator + "{{Front}}"},
		},
		WithCSS(basicCSS))
}

// BasicTypeInTheAnswerModel asks the reviewer to type Back.
func BasicTypeInTheAnswerModel() *Model {
	return mustModel(BasicTypeInTheAnswerModelID, "Basic (type in the answer) (knolpack)",
		[]Field{arialField("Front"), arialField("Back")},
		[]Template{{
			Name:           "Card 1",
			QuestionFormat: "{{Front}}\n\n{{type:Back}}",
			AnswerFormat:   "{{Front}}\n\n<hr id=answer>\n\n{{type:Back}}",
		}},
		WithCSS(basicCSS))
}

// ClozeModel creates one card per cloze deletion in Text.
func ClozeModel() *Model {
	return mustModel(ClozeModelID, "Cloze (knolpack)",
		[]Field{arialField("Text"), arialField("Back Extra")},
		[]Template{{Name: "Cloze", QuestionFormat: "{{cloze:Text}}", AnswerFormat: "{{cloze:Text}}<br>\n{{Back Extra}}"}},
		WithKind(Cloze), WithCSS(clozeCSS))
}
