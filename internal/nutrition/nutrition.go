package nutrition

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrNoMatch     = errors.New("no nutrition match")
	ErrUnavailable = errors.New("nutrition service unavailable")
)

// Facts are macro estimates for a whole query, summed across every item the
// provider recognized in it.
type Facts struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Items    int     `json:"items"`
}

func (facts Facts) add(item Facts) Facts {
	return Facts{
		Calories: facts.Calories + item.Calories,
		Protein:  facts.Protein + item.Protein,
		Carbs:    facts.Carbs + item.Carbs,
		Fat:      facts.Fat + item.Fat,
		Fiber:    facts.Fiber + item.Fiber,
		Items:    facts.Items + 1,
	}
}

type Lookup interface {
	Lookup(ctx context.Context, query string) (Facts, error)
}

func NormalizeQuery(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(raw)), " ")
}
