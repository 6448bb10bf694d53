package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"claimlens/internal/config"
	"claimlens/internal/denial"
	"claimlens/internal/extract"
	"claimlens/internal/store"
	"claimlens/internal/voice"
	"claimlens/internal/wallet"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	cmd := os.Args[1]
	args := os.Args[2:]

	cfg, err := config.Load(os.Getenv("CL_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log := newLogger(cfg.Log.Level)
	app := &app{cfg: cfg, log: log}

	switch cmd {
	case "plan":
		app.plan(args)
	case "cost":
		app.cost(args)
	case "eob":
		app.eob(args)
	case "previsit":
		app.previsit(args)
	case "models":
		app.models(args)
	case "board":
		app.board(args)
	case "donate":
		app.donate(args)
	case "donations":
		app.donations(args)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: claimlens <command> [flags]

commands:
  plan      extract an insurance plan from a card image or notes
  cost      estimate costs for a treatment
  eob       extract and explain an EOB or medical bill
  previsit  run a pre-visit analysis with model fallback
  models    list ranked generation models for the configured key
  board     community board (post / list / like / delete)
  donate    send a donation and record it
  donations list donation history`)
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).With().Timestamp().Logger()
}

type app struct {
	cfg config.Config
	log zerolog.Logger
}

func (a *app) client() *extract.Client {
	return extract.New(extract.Config{
		APIKey:        a.cfg.Gemini.APIKey,
		Model:         a.cfg.Gemini.Model,
		PreVisitModel: a.cfg.Gemini.PreVisitModel,
		DetectEnv:     true,
	}, a.log)
}

func (a *app) speaker() voice.Speaker {
	if a.cfg.Voice.Enabled && a.cfg.Voice.OpenAIKey != "" {
		return voice.NewOpenAI(a.cfg.Voice.OpenAIKey)
	}
	return voice.Noop{}
}

func (a *app) openStore() *store.Store {
	st, err := store.Open(a.cfg.Store.Path)
	if err != nil {
		a.log.Fatal().Err(err).Str("path", a.cfg.Store.Path).Msg("cannot open store")
	}
	return st
}

func (a *app) plan(args []string) {
	fs := flag.NewFlagSet("plan", flag.ExitOnError)
	file := fs.String("file", "", "insurance card or plan document (jpg/png/webp/pdf)")
	notes := fs.String("notes", "", "extra free-text context")
	fs.Parse(args)

	if *file == "" && strings.TrimSpace(*notes) == "" {
		fail("Please provide a file or enter insurance details.")
	}

	ctx := context.Background()
	in := extract.PlanInput{Notes: *notes}
	if *file != "" {
		in.Document = mustLoadDocument(*file)
	}

	result, err := a.client().ExtractPlan(ctx, in)
	if err != nil {
		fail(userMessage(err))
	}
	printJSON(result)

	voice.Announce(ctx, a.speaker(), a.log,
		"Your insurance plan has been analyzed. "+result.Summary, a.cfg.Voice.OutPath)
}

func (a *app) cost(args []string) {
	fs := flag.NewFlagSet("cost", flag.ExitOnError)
	query := fs.String("query", "", "treatment or procedure to look up")
	planFile := fs.String("plan", "", "JSON file with a previously extracted plan")
	fs.Parse(args)

	if strings.TrimSpace(*query) == "" {
		fail("Please provide a treatment to search for.")
	}

	in := extract.CostInput{Query: *query}
	if *planFile != "" {
		data, err := os.ReadFile(*planFile)
		if err != nil {
			fail(err.Error())
		}
		var plan extract.PlanSummary
		if err := json.Unmarshal(data, &plan); err != nil {
			fail("plan file is not valid JSON: " + err.Error())
		}
		in.Plan = &plan
	}

	ctx := context.Background()
	result, err := a.client().LookupTreatmentCost(ctx, in)
	if err != nil {
		fail(userMessage(err))
	}
	printJSON(result)

	voice.Announce(ctx, a.speaker(), a.log,
		fmt.Sprintf("I found some information for %s. %s", *query, result.Summary), a.cfg.Voice.OutPath)
}

func (a *app) eob(args []string) {
	fs := flag.NewFlagSet("eob", flag.ExitOnError)
	file := fs.String("file", "", "EOB or medical bill (jpg/png/webp/pdf)")
	fs.Parse(args)

	if *file == "" {
		fail("Please provide an EOB or medical bill first.")
	}

	ctx := context.Background()
	doc := mustLoadDocument(*file)
	result, err := a.client().ExtractEOB(ctx, extract.EOBInput{Document: *doc})
	if err != nil {
		fail(userMessage(err))
	}

	entry := denial.Enrich(result)
	verdict := denial.Verdict(result, entry)

	out := struct {
		*extract.EOBExtraction
		Intelligence *denial.Entry `json:"intelligence"`
		Verdict      string        `json:"verdict"`
	}{result, entry, verdict}
	printJSON(out)

	voice.Announce(ctx, a.speaker(), a.log, verdict, a.cfg.Voice.OutPath)
}

func (a *app) previsit(args []string) {
	fs := flag.NewFlagSet("previsit", flag.ExitOnError)
	query := fs.String("query", "", "what you need help preparing for")
	file := fs.String("file", "", "optional insurance card (jpg/png/webp/pdf)")
	lat := fs.Float64("lat", 0, "optional latitude")
	lng := fs.Float64("lng", 0, "optional longitude")
	fs.Parse(args)

	if *file == "" && strings.TrimSpace(*query) == "" {
		fail("Please provide an insurance card or type a message.")
	}

	in := extract.PreVisitInput{Query: *query}
	if *file != "" {
		in.Document = mustLoadDocument(*file)
	}
	if *lat != 0 || *lng != 0 {
		in.Location = &extract.LatLng{Lat: *lat, Lng: *lng}
	}

	ctx := context.Background()
	result, err := a.client().AnalyzePreVisit(ctx, in)
	if err != nil {
		fail(userMessage(err))
	}

	if result.Type == extract.AnalysisTypeDenial {
		msg := result.DenialMessage
		if msg == "" {
			msg = "I'm sorry, I can only assist with hospital pre-visit and insurance related queries."
		}
		fail(msg)
	}
	printJSON(result)

	voice.Announce(ctx, a.speaker(), a.log, result.Summary, a.cfg.Voice.OutPath)
}

func (a *app) models(args []string) {
	fs := flag.NewFlagSet("models", flag.ExitOnError)
	fs.Parse(args)

	credential := a.cfg.Gemini.APIKey
	if credential == "" {
		credential = os.Getenv("GEMINI_API_KEY")
	}
	ranked := a.client().Catalog().Ranked(context.Background(), credential)
	if len(ranked) == 0 {
		fail("No available model supports content generation for this key.")
	}
	for _, m := range ranked {
		fmt.Println(m)
	}
}

func (a *app) board(args []string) {
	if len(args) < 1 {
		fail("usage: claimlens board <post|list|like|delete> [flags]")
	}
	sub := args[0]
	st := a.openStore()
	defer st.Close()
	ctx := context.Background()

	switch sub {
	case "post":
		fs := flag.NewFlagSet("board post", flag.ExitOnError)
		author := fs.String("author", "anonymous", "display name")
		title := fs.String("title", "", "post title")
		body := fs.String("body", "", "post body")
		category := fs.String("category", "general", "post category")
		fs.Parse(args[1:])
		if strings.TrimSpace(*title) == "" {
			fail("Post title is required.")
		}
		p, err := st.CreatePost(ctx, *author, *title, *body, *category)
		if err != nil {
			fail(err.Error())
		}
		printJSON(p)
	case "list":
		fs := flag.NewFlagSet("board list", flag.ExitOnError)
		category := fs.String("category", "", "filter by category")
		fs.Parse(args[1:])
		posts, err := st.ListPosts(ctx, *category)
		if err != nil {
			fail(err.Error())
		}
		printJSON(posts)
	case "like":
		fs := flag.NewFlagSet("board like", flag.ExitOnError)
		id := fs.String("id", "", "post id")
		fs.Parse(args[1:])
		if err := st.LikePost(ctx, *id); err != nil {
			fail(err.Error())
		}
	case "delete":
		fs := flag.NewFlagSet("board delete", flag.ExitOnError)
		id := fs.String("id", "", "post id")
		fs.Parse(args[1:])
		if err := st.DeletePost(ctx, *id); err != nil {
			fail(err.Error())
		}
	default:
		fail("usage: claimlens board <post|list|like|delete> [flags]")
	}
}

func (a *app) donate(args []string) {
	fs := flag.NewFlagSet("donate", flag.ExitOnError)
	amount := fs.Float64("amount", 0, "donation amount in SOL")
	fs.Parse(args)

	st := a.openStore()
	defer st.Close()

	// The CLI has no signing provider; Donate fails with the install
	// hint unless one is wired in by an embedding application.
	svc := wallet.NewService(wallet.Unavailable{}, nil, st,
		a.cfg.Donation.Wallet, a.cfg.Donation.Cluster, a.log)
	signature, err := svc.Donate(context.Background(), *amount)
	if err != nil {
		fail(err.Error())
	}
	fmt.Println(signature)
}

func (a *app) donations(args []string) {
	st := a.openStore()
	defer st.Close()
	history, err := st.ListDonations(context.Background())
	if err != nil {
		fail(err.Error())
	}
	printJSON(history)
}

// mimeTypes covers the document formats the extraction tasks accept.
var mimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".pdf":  "application/pdf",
}

func mustLoadDocument(path string) *extract.Document {
	mime, ok := mimeTypes[strings.ToLower(filepath.Ext(path))]
	if !ok {
		fail("Please provide a JPG, PNG, WEBP, or PDF file.")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		fail(err.Error())
	}
	return &extract.Document{MIMEType: mime, Data: data}
}

// userMessage maps classified failures onto short actionable text.
func userMessage(err error) string {
	switch extract.ClassOf(err) {
	case extract.ClassUnauthorized:
		return "Missing or rejected Gemini API key. Set GEMINI_API_KEY (or CL_GEMINI_API_KEY) and retry."
	case extract.ClassRateLimited:
		return "Gemini rate limit reached (429). Wait a minute and try again."
	case extract.ClassNotFound:
		return "No available Gemini model supports this request. Set CL_GEMINI_MODEL and retry."
	case extract.ClassEmptyOutput, extract.ClassMalformedJSON:
		return "The model returned unusable output. Please try again."
	default:
		return "Analysis failed. Please try again."
	}
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fail(err.Error())
	}
	fmt.Println(string(b))
}

func fail(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
