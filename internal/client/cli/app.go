package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/recipebox/internal/client/models"
	"github.com/dmitrijs2005/recipebox/internal/client/router"
	"github.com/dmitrijs2005/recipebox/internal/client/services"
	"github.com/dmitrijs2005/recipebox/internal/client/session"
	"github.com/dmitrijs2005/recipebox/internal/logging"
)

// Session is the view of the session store the shell needs: the current
// user, change notifications and when the session began.
type Session interface {
	Load(ctx context.Context) (*models.User, error)
	Subscribe(fn session.Listener) (unsubscribe func())
	SavedAt(ctx context.Context) (time.Time, error)
}

// Deps are the collaborators of an App. In and Out default to the process
// stdin and stdout; Logger defaults to a discarding logger.
//
// In carries commands and form answers only. Passwords are always read
// without echo from the controlling terminal (the process stdin), never
// from In, so piped input cannot supply them.
type Deps struct {
	Auth    services.AuthService
	Recipes services.RecipeService
	Users   services.UserService
	Session Session
	Logger  logging.Logger
	In      io.Reader
	Out     io.Writer
}

type App struct {
	authService   services.AuthService
	recipeService services.RecipeService
	userService   services.UserService
	session       Session
	log           logging.Logger

	reader *bufio.Reader
	out    io.Writer

	mu            sync.RWMutex
	authenticated bool
	user          *models.User

	current router.Route
}

func NewApp(d Deps) *App {
	if d.In == nil {
		d.In = os.Stdin
	}
	if d.Out == nil {
		d.Out = os.Stdout
	}
	if d.Logger == nil {
		d.Logger = logging.Discard()
	}
	return &App{
		authService:   d.Auth,
		recipeService: d.Recipes,
		userService:   d.Users,
		session:       d.Session,
		log:           d.Logger,
		reader:        bufio.NewReader(d.In),
		out:           d.Out,
	}
}

// Run derives the authentication state from the stored session, follows
// its changes, shows the start route and then serves commands until EOF,
// "exit" or ctx is done.
func (a *App) Run(ctx context.Context) error {
	user, err := a.session.Load(ctx)
	if err != nil {
		return err
	}
	a.setUser(user)

	unsubscribe := a.session.Subscribe(a.onSessionChange)
	defer unsubscribe()

	a.println("Welcome to recipebox (type 'help' for commands)")
	a.navigate(ctx, router.Route{Kind: router.Home})

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
	return nil
}

// onSessionChange is the only writer of the authentication state after
// start-up. It runs on the goroutine that changed the store, which is the
// session watcher for changes made elsewhere.
func (a *App) onSessionChange(user *models.User) {
	before := a.isAuthenticated()
	a.setUser(user)
	if before != (user != nil) {
		a.log.Info(context.Background(), "session changed", "authenticated", user != nil)
	}
}

func (a *App) setUser(user *models.User) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.user = user
	a.authenticated = user != nil
}

func (a *App) isAuthenticated() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.authenticated
}

// currentUser returns a copy of the signed-in user, or nil.
func (a *App) currentUser() *models.User {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.user == nil {
		return nil
	}
	u := *a.user
	return &u
}

func (a *App) currentUserID() int64 {
	if u := a.currentUser(); u != nil {
		return u.ID
	}
	return 0
}

func (a *App) getStatus() string {
	if u := a.currentUser(); u != nil {
		return "(" + u.Username + ")"
	}
	return ""
}
