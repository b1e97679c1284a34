// Package tasty provides the recipe retrieval adapter backed by the Tasty
// API on RapidAPI.
package tasty

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/craveapp/crave/internal/domain/recipe"
	"github.com/craveapp/crave/internal/infrastructure/config"
	"github.com/craveapp/crave/internal/ports/outbound"
	"go.uber.org/zap"
)

// Client implements the RecipeSearchService interface against Tasty.
// One bounded network call per search; never retries on its own.
type Client struct {
	host     string
	apiKey   string
	pageSize int
	client   *http.Client
	logger   *zap.Logger
}

// NewClient creates a new Tasty client
func NewClient(cfg config.TastyConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Client{
		host:     cfg.Host,
		apiKey:   cfg.APIKey,
		pageSize: pageSize,
		client:   &http.Client{Timeout: timeout},
		logger:   logger.Named("tasty-client"),
	}
}

// Search translates the constraint set into one Tasty list query and
// returns raw candidates. Transport and upstream failures are reported as
// a classified failure in the result, never raised: the pipeline owns the
// retry/fallback decision.
func (c *Client) Search(ctx context.Context, constraints recipe.ConstraintSet) outbound.SearchResult {
	query := url.Values{}
	query.Set("from", "0")
	query.Set("size", strconv.Itoa(c.pageSize))
	query.Set("q", buildQuery(constraints))
	if tags := buildTags(constraints); tags != "" {
		query.Set("tags", tags)
	}

	endpoint := fmt.Sprintf("https://%s/recipes/list?%s", c.host, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return failure(outbound.FailureUpstreamError, err)
	}
	req.Header.Set("X-RapidAPI-Host", c.host)
	req.Header.Set("X-RapidAPI-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		kind := outbound.FailureUpstreamError
		if isTimeout(err) {
			kind = outbound.FailureTimeout
		}
		c.logger.Warn("Tasty request failed", zap.String("kind", string(kind)), zap.Error(err))
		return failure(kind, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return failure(outbound.FailureUpstreamError, err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return failure(outbound.FailureRateLimited, fmt.Errorf("tasty rate limited: %s", body))
	}
	if resp.StatusCode != http.StatusOK {
		return failure(outbound.FailureUpstreamError, fmt.Errorf("tasty error %d: %s", resp.StatusCode, body))
	}

	var list listResponse
	if err := json.Unmarshal(body, &list); err != nil {
		return failure(outbound.FailureUpstreamError, fmt.Errorf("failed to decode tasty response: %w", err))
	}

	candidates := make([]recipe.CandidateRecipe, 0, len(list.Results))
	for _, result := range list.Results {
		candidates = append(candidates, result.toCandidate())
	}

	c.logger.Debug("Tasty search completed",
		zap.String("query", query.Get("q")),
		zap.Int("candidates", len(candidates)),
	)
	return outbound.SearchResult{Candidates: candidates}
}

func failure(kind outbound.SearchFailureKind, cause error) outbound.SearchResult {
	return outbound.SearchResult{Failure: &outbound.SearchFailure{Kind: kind, Cause: cause}}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr) && urlErr.Timeout()
}

// buildQuery maps diets and meal type into the free-text search term,
// the way the corpus is actually indexed.
func buildQuery(constraints recipe.ConstraintSet) string {
	terms := make([]string, 0, len(constraints.Diets)+1)
	for _, d := range constraints.Diets {
		terms = append(terms, strings.ReplaceAll(string(d), "_", " "))
	}
	terms = append(terms, string(constraints.Meal))
	return strings.Join(terms, " ")
}

// buildTags maps meal type and budget tier onto Tasty's tag filters
func buildTags(constraints recipe.ConstraintSet) string {
	tags := []string{string(constraints.Meal)}
	if constraints.Budget == recipe.BudgetTierLow {
		tags = append(tags, "budget")
	}
	if constraints.TimeBounded() && constraints.TimeCeilingMinutes <= 30 {
		tags = append(tags, "under_30_minutes")
	}
	return strings.Join(tags, ",")
}

// Tasty API response structures

type listResponse struct {
	Count   int           `json:"count"`
	Results []tastyRecipe `json:"results"`
}

type tastyRecipe struct {
	Name             string          `json:"name"`
	CanonicalURL     string          `json:"canonical_url"`
	ThumbnailURL     string          `json:"thumbnail_url"`
	NumServings      int             `json:"num_servings"`
	TotalTimeMinutes int             `json:"total_time_minutes"`
	Sections         []tastySection  `json:"sections"`
	Instructions     []tastyStep     `json:"instructions"`
	Tags             []tastyTag      `json:"tags"`
	Nutrition        *tastyNutrition `json:"nutrition"`
}

type tastySection struct {
	Components []tastyComponent `json:"components"`
}

type tastyComponent struct {
	RawText string `json:"raw_text"`
}

type tastyStep struct {
	DisplayText string `json:"display_text"`
}

type tastyTag struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type tastyNutrition struct {
	Calories      int `json:"calories"`
	Protein       int `json:"protein"`
	Fat           int `json:"fat"`
	Carbohydrates int `json:"carbohydrates"`
	Sugar         int `json:"sugar"`
	Fiber         int `json:"fiber"`
}

func (t tastyRecipe) toCandidate() recipe.CandidateRecipe {
	candidate := recipe.CandidateRecipe{
		Title:            t.Name,
		Servings:         t.NumServings,
		TotalTimeMinutes: t.TotalTimeMinutes,
		SourceURL:        t.CanonicalURL,
		ImageURL:         t.ThumbnailURL,
	}

	for _, section := range t.Sections {
		for _, component := range section.Components {
			if component.RawText != "" {
				candidate.IngredientLines = append(candidate.IngredientLines, component.RawText)
			}
		}
	}

	for _, step := range t.Instructions {
		if step.DisplayText != "" {
			candidate.Instructions = append(candidate.Instructions, step.DisplayText)
		}
	}

	for _, tag := range t.Tags {
		if tag.Type == "dietary" {
			candidate.DietTags = append(candidate.DietTags, tag.Name)
		}
	}

	if t.Nutrition != nil {
		candidate.Nutrition = []recipe.NutritionFact{
			{Name: "Calories", Amount: strconv.Itoa(t.Nutrition.Calories)},
			{Name: "Protein", Amount: strconv.Itoa(t.Nutrition.Protein) + "g"},
			{Name: "Fat", Amount: strconv.Itoa(t.Nutrition.Fat) + "g"},
			{Name: "Carbohydrates", Amount: strconv.Itoa(t.Nutrition.Carbohydrates) + "g"},
		}
	}

	return candidate
}
