package clipper

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"meal-planner/internal/catalog"
)

// ExtractedRecipe represents the data structured by the model.
type ExtractedRecipe struct {
	Title       string                `json:"title"`
	Servings    servings              `json:"servings"`
	PrepTime    string                `json:"prep_time"`
	Ingredients []ExtractedIngredient `json:"ingredients"`
	Steps       []string              `json:"steps"`
}

// ExtractedIngredient is one ingredient line as the model returned it.
type ExtractedIngredient struct {
	Name     string   `json:"name"`
	Quantity *float64 `json:"quantity"`
	Unit     string   `json:"unit"`
	Category string   `json:"category"`
}

// servings accepts a number or a string such as "4 people".
type servings int

func (s *servings) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = 0
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		*s = servings(n)
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return fmt.Errorf("servings must be a number or string: %w", err)
	}
	digits := strings.TrimLeftFunc(str, func(r rune) bool { return !unicode.IsDigit(r) })
	end := strings.IndexFunc(digits, func(r rune) bool { return !unicode.IsDigit(r) })
	if end >= 0 {
		digits = digits[:end]
	}
	v, err := strconv.Atoi(digits)
	if err != nil {
		*s = 0
		return nil
	}
	*s = servings(v)
	return nil
}

func buildPrompt(content string) string {
	keys := make([]string, 0, len(catalog.Categories))
	for _, c := range catalog.Categories {
		keys = append(keys, string(c))
	}

	return fmt.Sprintf(`You are a recipe extraction expert. Extract the recipe from the following web page content.
Return the result strictly as a JSON object with this structure:
{
  "title": "Recipe Title",
  "servings": 4,
  "prep_time": "e.g. 30 mins",
  "ingredients": [
    {"name": "flour", "quantity": 200, "unit": "g", "category": "grains"}
  ],
  "steps": ["Step 1 description", "Step 2 description"]
}

Rules:
- "name" is the bare ingredient name in singular and lower case, without quantities or preparation notes.
- "quantity" is a number, or null when the page gives none (e.g. "salt to taste").
- "unit" is the unit abbreviation or name, or an empty string for countable items.
- "category" is one of: %s.
- If the page contains no recipe, return {"title": "", "ingredients": [], "steps": []}.

Page content:
%s
`, strings.Join(keys, ", "), content)
}

// parseExtracted decodes the model answer, tolerating a markdown code fence around it.
func parseExtracted(raw string) (*ExtractedRecipe, error) {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}

	var ex ExtractedRecipe
	if err := json.Unmarshal([]byte(text), &ex); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w", err)
	}
	ex.Title = strings.TrimSpace(ex.Title)
	if ex.Title == "" || len(ex.Ingredients) == 0 {
		return nil, ErrNoRecipe
	}
	if ex.Servings < 0 {
		ex.Servings = 0
	}
	return &ex, nil
}
