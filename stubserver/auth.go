package stubserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/MargonDiego/padel-frontend/models"
	"github.com/golang-jwt/jwt/v4"
)

type contextKey string

const userContextKey contextKey = "user"

const tokenTTL = 24 * time.Hour

func (s *Server) issueToken(user models.User) (string, string, error) {
	expiresAt := time.Now().Add(tokenTTL)
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.UserRoleID,
		"name":    user.Name,
		"exp":     expiresAt.Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", "", err
	}
	return signed, expiresAt.Format(time.RFC3339), nil
}

// authenticate verifies the bearer token and loads the account into the
// request context. Every protected route sits behind this.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			fail(w, http.StatusUnauthorized, "authentication required")
			return
		}
		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return s.jwtSecret, nil
		})
		if err != nil || !token.Valid {
			fail(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		userID, ok := claims["user_id"].(float64)
		if !ok {
			fail(w, http.StatusUnauthorized, "invalid token claims")
			return
		}
		user, err := s.store.user(int(userID))
		if err != nil {
			fail(w, http.StatusUnauthorized, "unknown account")
			return
		}
		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func currentUser(r *http.Request) *models.User {
	user, _ := r.Context().Value(userContextKey).(*models.User)
	return user
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Identity string `json:"identity"`
	}
	if err := readJSON(w, r, &input); err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if input.Username == "" || input.Password == "" {
		fail(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, ok := s.store.checkCredentials(input.Username, input.Password)
	if !ok {
		fail(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	token, expiresAt, err := s.issueToken(*user)
	if err != nil {
		fail(w, http.StatusInternalServerError, "failed to sign token")
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"user": user,
		"user_token": map[string]string{
			"type":       "bearer",
			"token":      token,
			"expires_at": expiresAt,
		},
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username             string  `json:"username"`
		Password             string  `json:"password"`
		PasswordConfirmation string  `json:"passwordConfirmation"`
		Name                 string  `json:"name"`
		Email                string  `json:"email"`
		Phone                string  `json:"phone"`
		PlayerLevel          string  `json:"playerLevel"`
		DominantHand         string  `json:"dominantHand"`
		ExperienceYears      *int    `json:"experienceYears"`
		HeightCm             *int    `json:"heightCm"`
		WeightKg             *int    `json:"weightKg"`
		City                 *string `json:"city"`
		Country              *string `json:"country"`
		PlayingPosition      *string `json:"playingPosition"`
		FavoriteRacket       *string `json:"favoriteRacket"`
	}
	if err := readJSON(w, r, &input); err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if input.Username == "" || input.Password == "" || input.Name == "" || input.Email == "" {
		fail(w, http.StatusBadRequest, "name, username, email and password are required")
		return
	}
	if input.Password != input.PasswordConfirmation {
		fail(w, http.StatusBadRequest, "password confirmation does not match")
		return
	}

	user := models.User{
		Username:        input.Username,
		Name:            input.Name,
		Email:           input.Email,
		ExperienceYears: input.ExperienceYears,
		HeightCm:        input.HeightCm,
		WeightKg:        input.WeightKg,
		City:            input.City,
		Country:         input.Country,
		PlayingPosition: input.PlayingPosition,
		FavoriteRacket:  input.FavoriteRacket,
	}
	if input.Phone != "" {
		user.Phone = &input.Phone
	}
	if input.PlayerLevel != "" {
		user.PlayerLevel = &input.PlayerLevel
	}
	if input.DominantHand != "" {
		user.DominantHand = &input.DominantHand
	}

	created, err := s.store.createUser(user, input.Password)
	if err != nil {
		if errors.Is(err, errUsernameConflict) {
			fail(w, http.StatusConflict, err.Error())
			return
		}
		fail(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondMessage(w, http.StatusCreated, created, "account created")
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, currentUser(r))
}

func (s *Server) handleRefreshToken(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	token, expiresAt, err := s.issueToken(*user)
	if err != nil {
		fail(w, http.StatusInternalServerError, "failed to sign token")
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"user": user,
		"user_token": map[string]string{
			"type":       "bearer",
			"token":      token,
			"expires_at": expiresAt,
		},
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	// Tokens are stateless here; logout simply acknowledges.
	respondMessage(w, http.StatusOK, nil, "session closed")
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var input struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := readJSON(w, r, &input); err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	user := currentUser(r)
	if !s.store.checkPassword(user.ID, input.CurrentPassword) {
		fail(w, http.StatusBadRequest, "current password is incorrect")
		return
	}
	if len(input.NewPassword) < 8 {
		fail(w, http.StatusBadRequest, "new password must be at least 8 characters")
		return
	}
	if err := s.store.setPassword(user.ID, input.NewPassword); err != nil {
		fail(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondMessage(w, http.StatusOK, nil, "password updated")
}

// handleUpdateProfile accepts the snake_case partial update and echoes the
// profile back in the same shape.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name            *string `json:"name"`
		Email           *string `json:"email"`
		Phone           *string `json:"phone"`
		Level           *string `json:"level"`
		PlayingHand     *string `json:"playing_hand"`
		PlayingPosition *string `json:"playing_position"`
		FavoriteRacket  *string `json:"favorite_racket"`
		ExperienceYears *int    `json:"experience_years"`
		HeightCm        *int    `json:"height_cm"`
		WeightKg        *int    `json:"weight_kg"`
		City            *string `json:"city"`
		Country         *string `json:"country"`
	}
	if err := readJSON(w, r, &input); err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}

	user := *currentUser(r)
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Phone != nil {
		user.Phone = input.Phone
	}
	if input.Level != nil {
		user.PlayerLevel = input.Level
	}
	if input.PlayingHand != nil {
		user.DominantHand = input.PlayingHand
	}
	if input.PlayingPosition != nil {
		user.PlayingPosition = input.PlayingPosition
	}
	if input.FavoriteRacket != nil {
		user.FavoriteRacket = input.FavoriteRacket
	}
	if input.ExperienceYears != nil {
		user.ExperienceYears = input.ExperienceYears
	}
	if input.HeightCm != nil {
		user.HeightCm = input.HeightCm
	}
	if input.WeightKg != nil {
		user.WeightKg = input.WeightKg
	}
	if input.City != nil {
		user.City = input.City
	}
	if input.Country != nil {
		user.Country = input.Country
	}
	if err := s.store.updateUser(user); err != nil {
		fail(w, http.StatusInternalServerError, err.Error())
		return
	}

	echo := map[string]interface{}{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	}
	if user.Phone != nil {
		echo["phone"] = *user.Phone
	}
	if user.PlayerLevel != nil {
		echo["level"] = *user.PlayerLevel
	}
	if user.DominantHand != nil {
		echo["playing_hand"] = *user.DominantHand
	}
	if user.PlayingPosition != nil {
		echo["playing_position"] = *user.PlayingPosition
	}
	if user.FavoriteRacket != nil {
		echo["favorite_racket"] = *user.FavoriteRacket
	}
	if user.ExperienceYears != nil {
		echo["experience_years"] = *user.ExperienceYears
	}
	if user.HeightCm != nil {
		echo["height_cm"] = *user.HeightCm
	}
	if user.WeightKg != nil {
		echo["weight_kg"] = *user.WeightKg
	}
	if user.City != nil {
		echo["city"] = *user.City
	}
	if user.Country != nil {
		echo["country"] = *user.Country
	}
	respondMessage(w, http.StatusOK, echo, "profile updated")
}
