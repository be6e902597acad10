package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"diet-planner/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	t.Run("ShortLine", func(t *testing.T) {
		assert.Equal(t, []string{"Breakfast:   oats"}, Wrap("Breakfast:   oats  ", 85))
	})

	t.Run("KeepsIndentation", func(t *testing.T) {
		assert.Equal(t, []string{"    - 1 cup oats"}, Wrap("    - 1 cup oats", 85))
		assert.Equal(t, []string{"        - honey"}, Wrap("\t- honey", 85))
	})

	t.Run("DropsWhitespaceAtBreaks", func(t *testing.T) {
		assert.Equal(t, []string{"  aa", "bb  cc", "dd"}, Wrap("  aa    bb  cc   dd", 6))
	})

	t.Run("Greedy", func(t *testing.T) {
		assert.Equal(t, []string{"aa bb", "cc dd", "e"}, Wrap("aa bb cc dd e", 5))
	})

	t.Run("WhitespaceOnly", func(t *testing.T) {
		assert.Empty(t, Wrap(" \t  ", 85))
	})

	t.Run("LongWordKeptWhole", func(t *testing.T) {
		word := strings.Repeat("x", 90)
		assert.Equal(t, []string{"a", word, "b"}, Wrap("a "+word+" b", 85))
	})

	t.Run("CountsCharactersNotBytes", func(t *testing.T) {
		assert.Equal(t, []string{"café café"}, Wrap("café café", 9))
	})

	t.Run("NeverSplitsWordsOrExceedsBudget", func(t *testing.T) {
		line := strings.Repeat("Grilled salmon with quinoa, lemon-dill yogurt and roasted asparagus. ", 12)
		wrapped := Wrap(line, WrapWidth)
		require.Greater(t, len(wrapped), 1)

		var rejoined []string
		for _, sub := range wrapped {
			assert.LessOrEqual(t, utf8.RuneCountInString(sub), WrapWidth)
			rejoined = append(rejoined, strings.Fields(sub)...)
		}
		assert.Equal(t, strings.Fields(line), rejoined)
	})
}

func TestLayout(t *testing.T) {
	t.Run("EmptyPlan", func(t *testing.T) {
		assert.Empty(t, Layout(""))
	})

	t.Run("BlankAndWhitespaceLines", func(t *testing.T) {
		rows := Layout("Intro\n\n    \nEnd")
		assert.Equal(t, []Row{
			{Text: "Intro"},
			{Blank: true},
			{Text: "End"},
		}, rows)
	})

	t.Run("HeadingAppliesToEverySubLine", func(t *testing.T) {
		heading := "  ## " + strings.Repeat("Weekly overview of balanced meals ", 5)
		body := strings.Repeat("Drink water with every meal and keep snacks light. ", 4)

		rows := Layout(heading + "\n" + body)

		headingRows := Wrap(heading, WrapWidth)
		bodyRows := Wrap(body, WrapWidth)
		require.Greater(t, len(headingRows), 1)
		require.Greater(t, len(bodyRows), 1)
		require.Len(t, rows, len(headingRows)+len(bodyRows))

		for i, row := range rows {
			if i < len(headingRows) {
				assert.True(t, row.Heading, "row %d of heading line should be bold", i)
				assert.Equal(t, headingRows[i], row.Text)
			} else {
				assert.False(t, row.Heading, "row %d of body line should not be bold", i)
			}
		}
	})

	t.Run("IndentedListItem", func(t *testing.T) {
		rows := Layout("1. Breakfast\n   - oats  with   milk")
		assert.Equal(t, []Row{
			{Text: "1. Breakfast"},
			{Text: "   - oats  with   milk"},
		}, rows)
	})

	t.Run("HashInsideLineIsNotHeading", func(t *testing.T) {
		rows := Layout("Day #1 breakfast")
		require.Len(t, rows, 1)
		assert.False(t, rows[0].Heading)
	})
}

func TestPDF(t *testing.T) {
	t.Run("EmptyPlanHasOnePage", func(t *testing.T) {
		doc, err := render("")
		require.NoError(t, err)
		assert.Equal(t, 1, doc.PageCount())

		art, err := PDF("")
		require.NoError(t, err)
		assert.Equal(t, MIMEPDF, art.MIMEType)
		assert.True(t, bytes.HasPrefix(art.Data, []byte("%PDF-")))
	})

	t.Run("CursorAdvance", func(t *testing.T) {
		base, err := render("Breakfast")
		require.NoError(t, err)

		withBlank, err := render("Breakfast\n")
		require.NoError(t, err)
		assert.InDelta(t, base.GetY()+rowHeight, withBlank.GetY(), 0.001)

		withSpaces, err := render("Breakfast\n   ")
		require.NoError(t, err)
		assert.InDelta(t, base.GetY(), withSpaces.GetY(), 0.001)
	})

	t.Run("FlowsOntoNewPages", func(t *testing.T) {
		lines := make([]string, 60)
		for i := range lines {
			lines[i] = "Snack: apple slices with almond butter"
		}

		doc, err := render(strings.Join(lines, "\n"))
		require.NoError(t, err)
		assert.Equal(t, 3, doc.PageCount())
	})

	t.Run("Latin1Accepted", func(t *testing.T) {
		art, err := PDF("## Día 1\nCrème brûlée, 200 g")
		require.NoError(t, err)
		assert.NotEmpty(t, art.Data)
	})

	t.Run("OutsideLatin1Rejected", func(t *testing.T) {
		_, err := PDF("## Día 1\nCrème brûlée, 200 g – no")
		var encErr *shared.EncodingError
		require.True(t, errors.As(err, &encErr), "en dash is outside ISO-8859-1, got %v", err)
		assert.Equal(t, '–', encErr.Rune)
		assert.Equal(t, 2, encErr.Line)
	})

	t.Run("EmojiRejected", func(t *testing.T) {
		_, err := PDF("Enjoy 🥗")
		var encErr *shared.EncodingError
		require.True(t, errors.As(err, &encErr))
		assert.Equal(t, "ISO-8859-1", encErr.Charset)
		assert.Equal(t, 1, encErr.Line)
	})
}

func TestText(t *testing.T) {
	plan := "## Day 1\r\nOats 🥣\n\n"
	art := Text(plan)
	assert.Equal(t, MIMEText, art.MIMEType)
	assert.Equal(t, []byte(plan), art.Data)
}

func TestFileName(t *testing.T) {
	date := time.Date(2024, time.May, 1, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, "Jane_Mary_Doe_diet_plan_2024-05-01.pdf", FileName("Jane Mary Doe", date, "pdf"))
	assert.Equal(t, "Sam_diet_plan_2024-05-01.txt", FileName("Sam", date, "txt"))
}
