package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/etnz/bondbook"
	"github.com/etnz/bondbook/date"
	"github.com/etnz/bondbook/docs"
	"github.com/etnz/bondbook/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

const (
	welcome = "Welcome to the bbk income advisor. Ask about your bonds and your monthly income, type 'bye' to exit."
	prompt  = "advise> "
)

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name: "Facilitator",
		// Used by facilitators to know what they can expected from the expert
		Description: ``,
		ModelName:   model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user holds bonds paying coupons in some months of the year. They are here to smooth
			their monthly income: find which months are weak, which bonds to buy more of, and what
			is known about the issuers.

			Devise a plan of questions to ask to each experts and come up with the best reponse to the user's request.

			The user will assume that you know about their bonds, ask the Bookkeeper first to understand what they are.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAnalyst returns an expert grounded on Google Search, to learn about
// bond issuers and coupons.
func NewAnalyst() *Expert {
	return &Expert{
		Name: "Analyst",
		Description: `This is an expert bond analyst,
		Very well aware of bond issuers, their ratings, coupon schedules and maturities,
		and about the latest news about them.
		Ask the Analyst whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in fixed income, you can search and find about anything related to
			bond issuers, their coupons, payout schedules, ratings and maturities. You Leverage Google Search to
			ground your assertions in a solid truth.
			You can get the latests news too, and you know how to relate them to the user's request.
				`}}},
		},
	}
}

// NewBookkeeper returns the expert reading the user's bond book.
func NewBookkeeper(session *bondbook.Session, currency string) *Expert {
	lib := []Function{
		IncomeReport(session, currency),
		Recommendations(session, currency),
		Instruments(session),
	}

	return &Expert{
		Name: "Bookkeeper",
		Description: `This is the Bookkeeper, in charge of reading the user's bond book.
		It knows every held bond, its coupon and payout months, the income of each month of the year,
		and which bonds would lift the weakest months.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a bookkeeper in charge of the user's bond book.
				You know how to use the Tools to extract relevant information about the user's bonds and income.
				You are part of a team of experts, yours is everything about the user's bonds. They might ask
				you questions about the user's bonds, pardon their approximative language and figure out what they meant.

				Use the available tools to get for information about the user's bonds
				  - list of bonds with held quantity, coupon and payout months
				  - monthly income, annual income per bond and the total
				  - recommendations for the weakest months

				` + must(docs.GetTopic("recommend")),
			}}},
		},
		Library: NewLibrary(lib),
	}
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// dateSchema is the optional "date" parameter of the bookkeeper's functions.
var dateSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"date": {
			Type: genai.TypeString,
			Description: `The day from which the next payouts are counted. Today is the default.
			Otherwise it uses a date format like YYYY-MM-DD.`,
		},
	},
}

// IncomeReport returns the function rendering the whole report of the book.
func IncomeReport(session *bondbook.Session, currency string) *Func {
	const name = "IncomeReport"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: name,
			Description: `IncomeReport lists all the bonds in the book with their held quantity, payout months,
			coupon and annual income, the grand total, a chart of the income of each month of the year,
			and the recommended bonds.`,
			Parameters: dateSchema,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown document with a table of bonds, a text chart of monthly income and a list of recommendations.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			on, err := parseDate(args)
			if err != nil {
				return errorResponse(id, name, err)
			}
			r := bondbook.NewReport(session.Book(), currency, on, bondbook.Hover{})
			return outputResponse(id, name, renderer.RenderReport(r, renderer.ReportOptions{}))
		},
	}
}

// Recommendations returns the function listing the recommended bonds.
func Recommendations(session *bondbook.Session, currency string) *Func {
	const name = "Recommendations"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: name,
			Description: `Recommendations lists up to three bonds paying in the months with the lowest income,
			best coupon first, then soonest payout.`,
			Parameters: dateSchema,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown list of recommended bonds with their coupon, payout months and next payout.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			on, err := parseDate(args)
			if err != nil {
				return errorResponse(id, name, err)
			}
			r := bondbook.NewReport(session.Book(), currency, on, bondbook.Hover{})
			return outputResponse(id, name, renderer.RenderRecommendations(r))
		},
	}
}

// Instruments returns the function listing the raw records of the book.
func Instruments(session *bondbook.Session) *Func {
	const name = "Instruments"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: `Instruments returns the records of the book, in display order, as JSON.`,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A JSON array of objects with id, name, heldQuantity, payoutMonths (1 to 12) and couponRate.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			data, err := json.Marshal(session.Book().Instruments())
			if err != nil {
				return errorResponse(id, name, err)
			}
			return outputResponse(id, name, string(data))
		},
	}
}

func parseDate(args map[string]any) (date.Date, error) {
	idate, hasDate := args["date"]
	if !hasDate {
		return date.Today(), nil
	}
	sdate, ok := idate.(string)
	if !ok {
		return date.Today(), fmt.Errorf("argument 'date' is not a string as expected but %T", idate)
	}

	on, err := date.Parse(sdate)
	if err != nil {
		return date.Today(), fmt.Errorf("argument 'date' must be a valid date got %q, want YYYY-MM-DD", sdate)
	}

	return on, nil
}
