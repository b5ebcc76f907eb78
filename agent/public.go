package agent

import (
	"context"
	"fmt"

	"github.com/etnz/patrimoine"
	"github.com/etnz/patrimoine/docs"
	"github.com/etnz/patrimoine/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is here primarily to understand his portfolio: what he holds, what it earned,
			what his recurring plans and dividends are worth, and what his wealth could become.

			Devise a plan of questions to ask each expert and come up with the best response to the user's request.

			The user will assume that you know about his assets, check the portfolio first to understand what they are.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAdvisor creates the market advisor expert. It grounds its answers with
// Google Search.
func NewAdvisor() *Expert {
	return &Expert{
		Name: "Advisor",
		Description: `This is an expert financial advisor,
		very well aware of financial products, funds, indexes and companies,
		and of the latest market news.
		Ask the Advisor whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in financial markets, you can search and find about anything related to
			financial institutions, companies, markets, funds etc. You leverage Google Search to
			ground your assertions in a solid truth.
			You can get the latest news too, and you know how to relate them to the user's request.
				`}}},
		},
	}
}

// NewBookkeeper creates the expert in charge of the user's ledger. Its
// function library reads the supplied snapshot, it never touches the files.
func NewBookkeeper(ledger *patrimoine.Ledger, quotes *patrimoine.QuoteBook) *Expert {
	lib := newBookkeeperLibrary(ledger, quotes)

	return &Expert{
		Name: "Bookkeeper",
		Description: `This is the Bookkeeper. He is in charge of reading the user's portfolio ledger.
		He can compute positions, performance indicators, dividend projections and
		long-horizon wealth simulations.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a bookkeeper in charge of the user's portfolio ledger.
				You know how to use the Tools to extract relevant information about the user's portfolio and wealth.
				You are part of a team of experts, yours is everything about the user's portfolio. They might ask
				you questions about the user's portfolio, pardon their approximative language and figure out what they meant.

				Use the available tools to get information about the user's portfolio
				  - positions with quantity, average cost and weight
				  - performance indicators
				  - projected dividend income
				  - wealth projections
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function.
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// errResponse wraps an error into a function response.
func errResponse(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}

// okResponse wraps a markdown output into a function response.
func okResponse(id, name, output string) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"output": output,
		},
	}
}

// dateSchema is the shared declaration of the optional date argument.
func dateSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeString,
		Description: `The date on which to compute the report. Today is the default.
		Otherwise it uses a flexible date format based on YYYY-MM-DD:

		` + must(docs.GetTopic("dates")),
	}
}

func newBookkeeperLibrary(ledger *patrimoine.Ledger, quotes *patrimoine.QuoteBook) []Function {
	positions := &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Positions",
			Description: `Positions lists every asset held in the portfolio on the given day,
			with its quantity, average cost, market value, gain and portfolio weight.`,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: map[string]*genai.Schema{"date": dateSchema()},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table of the open positions.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			on, err := parseDate(args)
			if err != nil {
				return errResponse(id, "Positions", err)
			}
			return okResponse(id, "Positions", renderer.PositionsMarkdown(on, ledger.PositionsReport(on, quotes)))
		},
	}

	summary := &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Summary",
			Description: `Summary computes the portfolio performance indicators on the given day:
			invested capital, market value, absolute and percentage return, CAGR,
			and projected annual dividends.`,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: map[string]*genai.Schema{"date": dateSchema()},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted indicator table.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			on, err := parseDate(args)
			if err != nil {
				return errResponse(id, "Summary", err)
			}
			return okResponse(id, "Summary", renderer.SummaryMarkdown(ledger.NewSummary(on, quotes, nil)))
		},
	}

	dividends := &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Dividends",
			Description: `Dividends projects the annual dividend income of every held asset
			from its trailing year of payments, with the cash received per calendar year.`,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: map[string]*genai.Schema{"date": dateSchema()},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted projection table.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			on, err := parseDate(args)
			if err != nil {
				return errResponse(id, "Dividends", err)
			}
			var projections []patrimoine.IncomeProjection
			for _, pos := range patrimoine.SortedPositions(ledger.Positions(on, quotes)) {
				if pos.Quantity.AsFloat() <= 0.001 {
					continue
				}
				projections = append(projections, ledger.ProjectAnnualIncome(pos.Asset, on, quotes, nil))
			}
			return okResponse(id, "Dividends", renderer.DividendsMarkdown(on, projections, ledger.DividendsByYear(on)))
		},
	}

	simulate := &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Simulate",
			Description: `Simulate projects the portfolio wealth over a long horizon with
			monthly compounding, seeded from the current portfolio. Optional
			arguments override the seeded parameters.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"years": {
						Type:        genai.TypeInteger,
						Description: "Projection horizon in years. Defaults to 25.",
					},
					"monthly": {
						Type:        genai.TypeNumber,
						Description: "Monthly contribution. Defaults to the historical average.",
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted projection with final wealth and passive income.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			p := ledger.DefaultWealthParams(patrimoine.Today(), quotes)
			if years, ok := args["years"].(float64); ok && years > 0 {
				p.HorizonYears = int(years)
			}
			if monthly, ok := args["monthly"].(float64); ok && monthly >= 0 {
				p.MonthlyContribution = monthly
			}
			result := patrimoine.SimulateWealth(p)
			breakdown := patrimoine.SimulateCompoundBreakdown(p)
			return okResponse(id, "Simulate", renderer.WealthMarkdown(p, result, breakdown))
		},
	}

	return []Function{positions, summary, dividends, simulate}
}

func parseDate(args map[string]any) (patrimoine.Date, error) {
	idate, hasDate := args["date"]
	if !hasDate {
		return patrimoine.Today(), nil
	}
	sdate, ok := idate.(string)
	if !ok {
		return patrimoine.Today(), fmt.Errorf("argument 'date' is not a string as expected but %T", idate)
	}

	date, err := patrimoine.ParseDate(sdate)
	if err != nil {
		return patrimoine.Today(), fmt.Errorf("argument 'date' must be a valid date got %q. Below is the doc about the date format\n\n%s ", sdate, must(docs.GetTopic("dates")))
	}

	return date, nil
}
