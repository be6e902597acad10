package telegram

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"diet-planner/internal/profile"
)

type questionKind int

const (
	kindText questionKind = iota
	kindNumber
	kindChoice
	kindMulti
)

// skipAnswer accepts the default of a number or leaves optional text empty.
const skipAnswer = "-"

type question struct {
	prompt   string
	kind     questionKind
	options  []string
	optional bool
	min, max int
	def      int
	set      func(a *profile.Answers, v string)
	setInt   func(a *profile.Answers, n int)
}

var questions = []question{
	{prompt: "What is your name?", kind: kindText, set: func(a *profile.Answers, v string) { a.Name = v }},
	{prompt: "How old are you?", kind: kindNumber, min: profile.MinAge, max: profile.MaxAge, def: profile.DefaultAge,
		setInt: func(a *profile.Answers, n int) { a.Age = n }},
	{prompt: "Gender?", kind: kindChoice, options: profile.Strings(profile.Genders),
		set: func(a *profile.Answers, v string) { a.Gender = v }},
	{prompt: "What is your weight?", kind: kindNumber, min: profile.MinWeight, max: profile.MaxWeight, def: profile.DefaultWeight,
		setInt: func(a *profile.Answers, n int) { a.Weight = n }},
	{prompt: "Weight unit?", kind: kindChoice, options: profile.Strings(profile.WeightUnits),
		set: func(a *profile.Answers, v string) { a.WeightUnit = v }},
	{prompt: "What is your height?", kind: kindNumber, min: profile.MinHeight, max: profile.MaxHeight, def: profile.DefaultHeight,
		setInt: func(a *profile.Answers, n int) { a.Height = n }},
	{prompt: "Height unit?", kind: kindChoice, options: profile.Strings(profile.HeightUnits),
		set: func(a *profile.Answers, v string) { a.HeightUnit = v }},
	{prompt: "Activity level?", kind: kindChoice, options: profile.Strings(profile.ActivityLevels),
		set: func(a *profile.Answers, v string) { a.ActivityLevel = v }},
	{prompt: "What is your primary goal?", kind: kindChoice, options: profile.Strings(profile.Goals),
		set: func(a *profile.Answers, v string) { a.Goal = v }},
	{prompt: "How long should the plan be?", kind: kindChoice, options: profile.Strings(profile.PlanDurations),
		set: func(a *profile.Answers, v string) { a.PlanDuration = v }},
	{prompt: "Any dietary restrictions? Tap all that apply, then Done.", kind: kindMulti, options: profile.Strings(profile.Restrictions)},
	{prompt: "Any food preferences? (foods you like or dislike, send - to skip)", kind: kindText, optional: true,
		set: func(a *profile.Answers, v string) { a.FoodPreferences = v }},
	{prompt: "How many meals per day?", kind: kindNumber, min: profile.MinMealsPerDay, max: profile.MaxMealsPerDay, def: profile.DefaultMeals,
		setInt: func(a *profile.Answers, n int) { a.MealsPerDay = n }},
	{prompt: "Any food allergies? (send - to skip)", kind: kindText, optional: true,
		set: func(a *profile.Answers, v string) { a.Allergies = v }},
	{prompt: "Any health conditions? (send - to skip)", kind: kindText, optional: true,
		set: func(a *profile.Answers, v string) { a.HealthConditions = v }},
	{prompt: "Budget?", kind: kindChoice, options: profile.Strings(profile.Budgets),
		set: func(a *profile.Answers, v string) { a.Budget = v }},
	{prompt: "How much time can you spend cooking?", kind: kindChoice, options: profile.Strings(profile.CookingTimes),
		set: func(a *profile.Answers, v string) { a.CookingTime = v }},
}

// input is one reply from the user: either typed text or a keyboard button.
type input struct {
	text   string
	button bool
	step   int
	option int
	done   bool
}

// outcome tells the bot what to send after an input was applied.
type outcome struct {
	problem  string
	toggled  bool
	step     int
	selected []string
	complete bool
	answers  profile.Answers
}

type session struct {
	step     int
	answers  profile.Answers
	selected []string
}

// apply consumes one input. It returns a problem to report when the input
// does not answer the current question.
func (s *session) apply(in input) (problem string, toggled bool) {
	q := questions[s.step]
	if in.button && in.step != s.step {
		return "", false
	}

	switch q.kind {
	case kindText:
		if in.button {
			return "Please type your answer.", false
		}
		v := strings.TrimSpace(in.text)
		if v == skipAnswer {
			v = ""
		}
		if v == "" && !q.optional {
			return "Please enter your name.", false
		}
		q.set(&s.answers, v)

	case kindNumber:
		if in.button {
			return "Please type a number.", false
		}
		v := strings.TrimSpace(in.text)
		if v != skipAnswer {
			n, err := strconv.Atoi(v)
			if err != nil || n < q.min || n > q.max {
				return fmt.Sprintf("Please send a whole number between %d and %d, or %s for %d.", q.min, q.max, skipAnswer, q.def), false
			}
			q.setInt(&s.answers, n)
		}

	case kindChoice:
		v, ok := pick(q, in)
		if !ok {
			return "Please choose one of the options.", false
		}
		q.set(&s.answers, v)

	case kindMulti:
		if in.button && !in.done {
			v, ok := pick(q, in)
			if !ok {
				return "", false
			}
			if i := slices.Index(s.selected, v); i >= 0 {
				s.selected = slices.Delete(s.selected, i, i+1)
			} else {
				s.selected = append(s.selected, v)
			}
			return "", true
		}
		if !in.button && strings.TrimSpace(in.text) != skipAnswer {
			return "Tap the options that apply, then Done.", false
		}
		s.answers.DietaryRestrictions = slices.Clone(s.selected)
	}

	s.step++
	return "", false
}

// pick resolves a button index or a typed option, ignoring case.
func pick(q question, in input) (string, bool) {
	if in.button {
		if in.option < 0 || in.option >= len(q.options) {
			return "", false
		}
		return q.options[in.option], true
	}
	v := strings.TrimSpace(in.text)
	for _, opt := range q.options {
		if strings.EqualFold(opt, v) {
			return opt, true
		}
	}
	return "", false
}

// sessionStore keeps questionnaire state per chat in memory.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*session
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[int64]*session)}
}

func (st *sessionStore) start(chatID int64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[chatID] = &session{}
}

func (st *sessionStore) drop(chatID int64) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	_, ok := st.sessions[chatID]
	delete(st.sessions, chatID)
	return ok
}

// advance applies in to the chat's session. ok is false when the chat has no
// questionnaire running. A completed session is removed.
func (st *sessionStore) advance(chatID int64, in input) (out outcome, ok bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[chatID]
	if !ok {
		return outcome{}, false
	}
	before := s.step
	out.problem, out.toggled = s.apply(in)
	out.step = s.step
	out.selected = slices.Clone(s.selected)

	if s.step == len(questions) {
		delete(st.sessions, chatID)
		out.complete = true
		out.answers = s.answers
	} else if s.step == before && out.problem == "" && !out.toggled {
		// stale button from an earlier question
		out.step = -1
	}
	return out, true
}
