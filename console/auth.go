package console

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MargonDiego/padel-frontend/api"
	"github.com/MargonDiego/padel-frontend/models"
)

func (a *App) cmdLogin(ctx context.Context, args []string) error {
	fs := a.newFlagSet("login")
	username := fs.String("username", "", "account username (required)")
	password := fs.String("password", "", "account password (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" || *password == "" {
		fs.Usage()
		return errUsage
	}

	resp, err := a.Client.Login(ctx, *username, *password)
	if err != nil {
		if errors.Is(err, api.ErrLoginInFlight) {
			return errors.New("a login attempt is already running")
		}
		return fmt.Errorf("login failed: %w", err)
	}
	fmt.Fprintf(a.Out, "signed in as %s (%s)\n", resp.User.Username, roleName(resp.User.UserRoleID))
	return nil
}

func (a *App) cmdLogout(ctx context.Context) error {
	if !a.Session.Authenticated() {
		fmt.Fprintln(a.Out, "not signed in")
		return nil
	}
	// Logout clears the local session even when the server call fails, so the
	// error is informational only.
	if err := a.Client.Logout(ctx); err != nil {
		a.Logger.Warn("server logout failed, local session cleared anyway", slog.Any("error", err))
	}
	fmt.Fprintln(a.Out, "signed out")
	return nil
}

func (a *App) cmdWhoami(ctx context.Context, args []string) error {
	fs := a.newFlagSet("whoami")
	refresh := fs.Bool("refresh", false, "fetch the account from the server instead of the local session")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireSession(); err != nil {
		return err
	}

	user := a.Session.User()
	if *refresh || user == nil {
		fetched, err := a.Client.CurrentUser(ctx)
		if err != nil {
			return err
		}
		user = &fetched
	}

	w := a.tab()
	fmt.Fprintf(w, "id\t%d\n", user.ID)
	fmt.Fprintf(w, "username\t%s\n", user.Username)
	fmt.Fprintf(w, "name\t%s\n", user.Name)
	fmt.Fprintf(w, "email\t%s\n", user.Email)
	fmt.Fprintf(w, "role\t%s\n", roleName(user.UserRoleID))
	if user.PlayerLevel != nil {
		fmt.Fprintf(w, "level\t%s\n", *user.PlayerLevel)
	}
	if user.City != nil {
		fmt.Fprintf(w, "city\t%s\n", *user.City)
	}
	return w.Flush()
}

func (a *App) cmdRegister(ctx context.Context, args []string) error {
	fs := a.newFlagSet("register")
	var in api.RegisterInput
	fs.StringVar(&in.Username, "username", "", "username (required)")
	fs.StringVar(&in.Password, "password", "", "password (required)")
	fs.StringVar(&in.Name, "name", "", "full name (required)")
	fs.StringVar(&in.Email, "email", "", "email address (required)")
	fs.StringVar(&in.Phone, "phone", "", "phone number")
	fs.StringVar(&in.PlayerLevel, "level", "", "player level, e.g. beginner or advanced")
	fs.StringVar(&in.DominantHand, "hand", "", "dominant hand, left or right")
	experience := fs.Int("experience", 0, "years of experience")
	height := fs.Int("height", 0, "height in cm")
	weight := fs.Int("weight", 0, "weight in kg")
	city := fs.String("city", "", "city")
	country := fs.String("country", "", "country")
	position := fs.String("position", "", "playing position, drive or reves")
	racket := fs.String("racket", "", "favorite racket")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if in.Username == "" || in.Password == "" || in.Name == "" || in.Email == "" {
		fs.Usage()
		return errUsage
	}
	in.PasswordConfirmation = in.Password
	in.ExperienceYears = optInt(*experience)
	in.HeightCm = optInt(*height)
	in.WeightKg = optInt(*weight)
	in.City = optStr(*city)
	in.Country = optStr(*country)
	in.PlayingPosition = optStr(*position)
	in.FavoriteRacket = optStr(*racket)

	user, err := a.Client.Register(ctx, in)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	fmt.Fprintf(a.Out, "account created: %s (id %d), sign in with \"padeladmin login\"\n", user.Username, user.ID)
	return nil
}

func (a *App) cmdProfile(ctx context.Context, args []string) error {
	fs := a.newFlagSet("profile")
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email address")
	phone := fs.String("phone", "", "phone number")
	level := fs.String("level", "", "player level")
	hand := fs.String("hand", "", "dominant hand")
	position := fs.String("position", "", "playing position")
	racket := fs.String("racket", "", "favorite racket")
	experience := fs.Int("experience", 0, "years of experience")
	height := fs.Int("height", 0, "height in cm")
	weight := fs.Int("weight", 0, "weight in kg")
	city := fs.String("city", "", "city")
	country := fs.String("country", "", "country")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireSession(); err != nil {
		return err
	}
	current := a.Session.User()
	if current == nil {
		fetched, err := a.Client.CurrentUser(ctx)
		if err != nil {
			return err
		}
		current = &fetched
	}

	input := api.ProfileUpdateInput{
		Name:            optStr(*name),
		Email:           optStr(*email),
		Phone:           optStr(*phone),
		Level:           optStr(*level),
		PlayingHand:     optStr(*hand),
		PlayingPosition: optStr(*position),
		FavoriteRacket:  optStr(*racket),
		ExperienceYears: optInt(*experience),
		HeightCm:        optInt(*height),
		WeightKg:        optInt(*weight),
		City:            optStr(*city),
		Country:         optStr(*country),
	}
	updated, err := a.Client.UpdateProfile(ctx, *current, input)
	if err != nil {
		return fmt.Errorf("profile update failed: %w", err)
	}
	fmt.Fprintf(a.Out, "profile updated for %s\n", updated.Username)
	return nil
}

func (a *App) cmdPassword(ctx context.Context, args []string) error {
	fs := a.newFlagSet("password")
	current := fs.String("current", "", "current password (required)")
	next := fs.String("new", "", "new password (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *current == "" || *next == "" {
		fs.Usage()
		return errUsage
	}
	if err := a.requireSession(); err != nil {
		return err
	}
	err := a.Client.ChangePassword(ctx, api.ChangePasswordInput{
		CurrentPassword: *current,
		NewPassword:     *next,
	})
	if err != nil {
		return fmt.Errorf("password change failed: %w", err)
	}
	fmt.Fprintln(a.Out, "password changed")
	return nil
}

func (a *App) cmdTheme(args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.Out, a.Session.ThemeMode())
		return nil
	}
	mode := args[0]
	if mode != "light" && mode != "dark" {
		return fmt.Errorf("unknown theme %q, use light or dark", mode)
	}
	if err := a.Session.SetThemeMode(mode); err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "theme set to %s\n", mode)
	return nil
}

func roleName(roleID int) string {
	switch roleID {
	case models.RoleAdmin:
		return "admin"
	case models.RoleOrganizer:
		return "organizer"
	case models.RolePlayer:
		return "player"
	}
	return fmt.Sprintf("role %d", roleID)
}
