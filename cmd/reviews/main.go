package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"strconv"
	"syscall"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-reviews-client/api"
	"github.com/jrsteele09/go-reviews-client/credentials/filerepo"
	"github.com/jrsteele09/go-reviews-client/internal/config"
	"github.com/jrsteele09/go-reviews-client/session"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			debug.PrintStack()
			returnError = fmt.Errorf("panic recovered: %v", r)
		}
	}()

	verbose := flag.Bool("v", false, "log every backend call")
	flag.Parse()

	cfg, err := config.New()
	if err != nil {
		return err
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if !*verbose {
		logger = logger.Level(zerolog.WarnLevel)
	}

	store := session.NewStore()
	client, err := api.NewClient(
		cfg.GetAPIURL(),
		store,
		filerepo.New(cfg.GetTokenFile()),
		api.WithLogger(logger),
		api.WithHTTPClient(&http.Client{Timeout: cfg.GetRequestTimeout()}),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	args := flag.Args()
	if len(args) == 0 {
		displayAppname(cfg.GetAppName())
		usage()
		return nil
	}

	command, commandArgs := args[0], args[1:]

	// Re-establish the session from the durable refresh-token slot before
	// any protected command runs.
	if command != "login" && command != "signup" {
		client.Restore(ctx)
	}

	switch command {
	case "login":
		return loginCmd(ctx, client, commandArgs)
	case "signup":
		return signupCmd(ctx, client, commandArgs)
	case "whoami":
		return whoamiCmd(store)
	case "restaurants":
		return restaurantsCmd(ctx, client, commandArgs)
	case "restaurant":
		return restaurantCmd(ctx, client, commandArgs)
	case "review":
		return reviewCmd(ctx, client, commandArgs)
	case "items":
		return itemsCmd(ctx, client, store, commandArgs)
	case "logout":
		return client.Logout(ctx)
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func loginCmd(ctx context.Context, client *api.Client, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: reviews login <username> <password>")
	}
	if err := client.Login(ctx, args[0], args[1]); err != nil {
		var detailErr *api.BackendDetailError
		if errors.As(err, &detailErr) {
			return errors.New(detailErr.Detail)
		}
		return err
	}

	state := client.Session()
	fmt.Printf("Logged in as %s\n", state.Subject)
	if session.IsAdmin(state) {
		fmt.Println("Admin access granted")
	}
	return nil
}

func signupCmd(ctx context.Context, client *api.Client, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: reviews signup <username> <password>")
	}
	if err := client.Signup(ctx, args[0], args[1]); err != nil {
		var detailErr *api.BackendDetailError
		if errors.As(err, &detailErr) {
			return errors.New(detailErr.Detail)
		}
		return err
	}
	fmt.Println("Account created, you can now login")
	return nil
}

func whoamiCmd(store *session.Store) error {
	state := store.State()
	if !state.LoggedIn {
		fmt.Println("Not logged in")
		return nil
	}
	fmt.Printf("%s (scopes: %v, admin: %t)\n", state.Subject, state.Scopes, session.IsAdmin(state))
	return nil
}

func restaurantsCmd(ctx context.Context, client *api.Client, args []string) error {
	query := api.RestaurantQuery{Limit: 10}
	if len(args) > 0 {
		query.Name = args[0]
	}

	list, err := client.LoadRestaurants(ctx, query)
	if err != nil {
		return sessionAwareError(err)
	}

	fmt.Printf("%d restaurant(s):\n", list.Count)
	for _, restaurant := range list.Data {
		fmt.Printf("  %-36s %-30s %.1f stars\n", restaurant.ID, restaurant.Name, restaurant.AvgRating)
	}
	return nil
}

func restaurantCmd(ctx context.Context, client *api.Client, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: reviews restaurant <id>")
	}

	detail, err := client.LoadRestaurant(ctx, args[0])
	if err != nil {
		return sessionAwareError(err)
	}
	if detail.Data == nil {
		fmt.Println("Restaurant not found")
		return nil
	}

	fmt.Printf("%s (%s, %s) — %.1f stars over %d review(s)\n",
		detail.Data.Name, detail.Data.Country, detail.Data.PostalCode,
		detail.Data.AvgRating, detail.ReviewCount)
	if detail.LastReview != nil {
		fmt.Printf("Latest review: %q (%d/5)\n", detail.LastReview.Review, detail.LastReview.Rating)
	}
	return nil
}

func reviewCmd(ctx context.Context, client *api.Client, args []string) error {
	if len(args) != 3 {
		return errors.New("usage: reviews review <restaurant-id> <rating 1-5> <text>")
	}

	rating, err := strconv.Atoi(args[1])
	if err != nil {
		return errors.Wrap(err, "rating must be a number")
	}

	created, err := client.SendReview(ctx, args[0], args[2], rating)
	if err != nil {
		return sessionAwareError(err)
	}
	fmt.Printf("Review %s stored\n", created.ID)
	return nil
}

func itemsCmd(ctx context.Context, client *api.Client, store *session.Store, args []string) error {
	if !session.IsAdmin(store.State()) {
		return errors.New("admin scopes required")
	}
	if len(args) < 1 {
		return errors.New("usage: reviews items <users|restaurants|reviews> [offset]")
	}

	endpoint := "/" + args[0]
	offset := 0
	if len(args) > 1 {
		parsed, err := strconv.Atoi(args[1])
		if err != nil {
			return errors.Wrap(err, "offset must be a number")
		}
		offset = parsed
	}

	page, err := client.LoadItems(ctx, endpoint, offset, 10)
	if err != nil {
		return sessionAwareError(err)
	}

	fmt.Printf("%d record(s):\n", page.Count)
	for _, item := range page.Data {
		fmt.Printf("  %v\n", item)
	}
	return nil
}

// sessionAwareError turns an exhausted credential into a friendlier message;
// the backend detail lives in the session's error field, not the error chain.
func sessionAwareError(err error) error {
	if errors.Is(err, api.ErrAuthAttemptsExhausted) {
		return errors.New("session expired, please login again")
	}
	return err
}

func usage() {
	fmt.Println(`Commands:
  login <username> <password>    authenticate and persist the refresh token
  signup <username> <password>   create an account
  whoami                         show the current session
  restaurants [name]             list restaurants
  restaurant <id>                show one restaurant with review highlights
  review <id> <rating> <text>    post a review
  items <model> [offset]         admin listing (users, restaurants, reviews)
  logout                         drop the stored refresh token`)
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
