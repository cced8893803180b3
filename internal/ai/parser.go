package ai

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/nutriamiga/nutriamiga/pkg/entity"
)

// EntryKind is the record type announced by the legacy TYPE tag.
type EntryKind string

const (
	KindMeal     EntryKind = "meal"
	KindExercise EntryKind = "exercise"
)

// Analysis is the structured result extracted from raw completion text.
type Analysis struct {
	Feedback      string
	Items         []entity.FoodItem
	TotalCalories int
	Status        entity.MealStatus
	Kind          EntryKind
}

var (
	itemTagRe   = regexp.MustCompile(`\[ITEM:\s*([^|\]]+?)\s*\|\s*([^|\]]+?)\s*\|\s*([0-9]+)\s*\]`)
	totalTagRe  = regexp.MustCompile(`\[TOTAL_CALORIES:\s*([0-9]+)\s*\]`)
	statusTagRe = regexp.MustCompile(`(?i)\[STATUS:\s*(VERDE|AMARELO|AZUL)\s*\]`)
	// Legacy single-value variant appended by older model personas.
	legacyCalTagRe  = regexp.MustCompile(`\[CALORIES:\s*([0-9]+)\s*\]`)
	legacyTypeTagRe = regexp.MustCompile(`(?i)\[TYPE:\s*(MEAL|EXERCISE)\s*\]`)

	firstTagRe = regexp.MustCompile(`\[(ITEM|TOTAL_CALORIES|STATUS|CALORIES|TYPE):`)
)

// Parse extracts the structured fields from raw model output. The grammar is
// treated as a lenient sub-protocol: malformed or missing tags never produce
// an error, every field has a defined default. Same text always yields the
// same Analysis.
func Parse(text string) Analysis {
	res := Analysis{
		Status: entity.StatusGood,
		Kind:   KindMeal,
	}

	for _, m := range itemTagRe.FindAllStringSubmatch(text, -1) {
		calories, err := strconv.Atoi(m[3])
		if err != nil {
			calories = 0
		}
		res.Items = append(res.Items, entity.FoodItem{
			Name:     strings.TrimSpace(m[1]),
			Quantity: strings.TrimSpace(m[2]),
			Calories: calories,
		})
	}

	res.TotalCalories = totalCalories(text, res.Items)

	if m := statusTagRe.FindStringSubmatch(text); m != nil {
		switch strings.ToUpper(m[1]) {
		case "AMARELO":
			res.Status = entity.StatusModerate
		case "AZUL":
			res.Status = entity.StatusException
		}
	}

	if m := legacyTypeTagRe.FindStringSubmatch(text); m != nil {
		if strings.EqualFold(m[1], "EXERCISE") {
			res.Kind = KindExercise
		}
	}

	if loc := firstTagRe.FindStringIndex(text); loc != nil {
		res.Feedback = strings.TrimSpace(text[:loc[0]])
	} else {
		res.Feedback = strings.TrimSpace(text)
	}

	return res
}

// totalCalories resolves the total in order of trust: explicit tag, sum of
// items, legacy CALORIES tag. Never undefined.
func totalCalories(text string, items []entity.FoodItem) int {
	if m := totalTagRe.FindStringSubmatch(text); m != nil {
		total, err := strconv.Atoi(m[1])
		if err == nil {
			return total
		}
	}
	if len(items) > 0 {
		sum := 0
		for _, it := range items {
			sum += it.Calories
		}
		return sum
	}
	if m := legacyCalTagRe.FindStringSubmatch(text); m != nil {
		total, err := strconv.Atoi(m[1])
		if err == nil {
			return total
		}
	}
	return 0
}
