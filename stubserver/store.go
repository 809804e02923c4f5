package stubserver

import (
	"errors"
	"sort"
	"sync"

	"github.com/MargonDiego/padel-frontend/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	errNotFound          = errors.New("requested resource not found")
	errUsernameConflict  = errors.New("username is already in use")
	errTeamNameConflict  = errors.New("team name is already in use")
	errAlreadyRegistered = errors.New("team is already registered for this tournament")
	errTournamentFull    = errors.New("tournament registration is full")
)

// Store is the stub's in-memory dataset. All access goes through the mutex;
// there is no persistence, a restart reseeds.
type Store struct {
	mu sync.RWMutex

	users         map[int]*models.User
	passwords     map[int][]byte // bcrypt hashes
	teams         map[int]*models.Team
	tournaments   map[int]*models.Tournament
	registrations map[int][]int         // tournament -> team ids in registration order
	seeds         map[int]map[int]int   // tournament -> team -> seed
	matches       map[int]*models.Match
	playerStats   map[int]*models.PlayerStat
	teamStats     map[int]*models.TeamStat

	nextUserID, nextTeamID, nextTournamentID, nextMatchID int
}

func NewStore() *Store {
	s := &Store{
		users:            make(map[int]*models.User),
		passwords:        make(map[int][]byte),
		teams:            make(map[int]*models.Team),
		tournaments:      make(map[int]*models.Tournament),
		registrations:    make(map[int][]int),
		seeds:            make(map[int]map[int]int),
		matches:          make(map[int]*models.Match),
		playerStats:      make(map[int]*models.PlayerStat),
		teamStats:        make(map[int]*models.TeamStat),
		nextUserID:       1,
		nextTeamID:       1,
		nextTournamentID: 1,
		nextMatchID:      1,
	}
	s.seed()
	return s
}

func strPtr(v string) *string { return &v }
func intPtr(v int) *int       { return &v }

// seed loads a small fixture set: an admin, an organizer, four players, two
// teams and one draft tournament. Every account's password is "secret123".
func (s *Store) seed() {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	if err != nil {
		panic(err) // static input, cannot fail
	}

	accounts := []struct {
		username string
		name     string
		role     int
	}{
		{"admin", "Platform Admin", models.RoleAdmin},
		{"organizer", "Club Organizer", models.RoleOrganizer},
		{"ana", "Ana Torres", models.RolePlayer},
		{"bruno", "Bruno Díaz", models.RolePlayer},
		{"carla", "Carla Soto", models.RolePlayer},
		{"diego", "Diego Rojas", models.RolePlayer},
	}
	for _, a := range accounts {
		id := s.nextUserID
		s.nextUserID++
		s.users[id] = &models.User{
			ID:           id,
			Username:     a.username,
			Name:         a.name,
			Email:        a.username + "@padel.local",
			UserRoleID:   a.role,
			UserStatusID: 1,
			PlayerLevel:  strPtr("intermediate"),
			DominantHand: strPtr("right"),
		}
		s.passwords[id] = hash
		s.playerStats[id] = &models.PlayerStat{ID: id, PlayerID: id, WinRatio: "0"}
	}

	pairs := []struct {
		name       string
		p1, p2     int
	}{
		{"Los Tigres", 3, 4},
		{"Las Águilas", 5, 6},
	}
	for _, p := range pairs {
		id := s.nextTeamID
		s.nextTeamID++
		s.teams[id] = &models.Team{ID: id, Name: p.name, Player1ID: p.p1, Player2ID: p.p2}
		s.teamStats[id] = &models.TeamStat{ID: id, TeamID: id, WinRatio: "0"}
	}

	tid := s.nextTournamentID
	s.nextTournamentID++
	s.tournaments[tid] = &models.Tournament{
		ID:          tid,
		Name:        "Torneo de Apertura",
		OrganizerID: 2,
		StartDate:   "2026-09-12",
		EndDate:     "2026-09-14",
		Status:      models.TournamentDraft,
		Format:      models.FormatElimination,
		MaxTeams:    intPtr(8),
		Location:    strPtr("Club Central"),
	}
}

func (s *Store) checkCredentials(username, password string) (*models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id, u := range s.users {
		if u.Username == username {
			if bcrypt.CompareHashAndPassword(s.passwords[id], []byte(password)) == nil {
				clone := *u
				return &clone, true
			}
			return nil, false
		}
	}
	return nil, false
}

func (s *Store) user(id int) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, errNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *Store) createUser(u models.User, password string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == u.Username {
			return nil, errUsernameConflict
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u.ID = s.nextUserID
	s.nextUserID++
	u.UserRoleID = models.RolePlayer
	u.UserStatusID = 1
	s.users[u.ID] = &u
	s.passwords[u.ID] = hash
	s.playerStats[u.ID] = &models.PlayerStat{ID: u.ID, PlayerID: u.ID, WinRatio: "0"}
	clone := u
	return &clone, nil
}

func (s *Store) updateUser(u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return errNotFound
	}
	s.users[u.ID] = &u
	return nil
}

func (s *Store) checkPassword(userID int, password string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return bcrypt.CompareHashAndPassword(s.passwords[userID], []byte(password)) == nil
}

func (s *Store) setPassword(userID int, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.passwords[userID] = hash
	return nil
}

func (s *Store) listTeams() []models.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()
	teams := make([]models.Team, 0, len(s.teams))
	for _, t := range s.teams {
		teams = append(teams, s.teamWithPlayersLocked(*t))
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].ID < teams[j].ID })
	return teams
}

func (s *Store) teamWithPlayersLocked(t models.Team) models.Team {
	if p, ok := s.users[t.Player1ID]; ok {
		clone := *p
		t.Player1 = &clone
	}
	if p, ok := s.users[t.Player2ID]; ok {
		clone := *p
		t.Player2 = &clone
	}
	return t
}

func (s *Store) team(id int) (models.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.teams[id]
	if !ok {
		return models.Team{}, errNotFound
	}
	return s.teamWithPlayersLocked(*t), nil
}

func (s *Store) createTeam(t models.Team) (models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.teams {
		if existing.Name == t.Name {
			return models.Team{}, errTeamNameConflict
		}
	}
	t.ID = s.nextTeamID
	s.nextTeamID++
	s.teams[t.ID] = &t
	s.teamStats[t.ID] = &models.TeamStat{ID: t.ID, TeamID: t.ID, WinRatio: "0"}
	return s.teamWithPlayersLocked(t), nil
}

func (s *Store) updateTeam(id int, name, description *string) (models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.teams[id]
	if !ok {
		return models.Team{}, errNotFound
	}
	if name != nil {
		t.Name = *name
	}
	if description != nil {
		t.Description = description
	}
	return s.teamWithPlayersLocked(*t), nil
}

func (s *Store) deleteTeam(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.teams[id]; !ok {
		return errNotFound
	}
	delete(s.teams, id)
	delete(s.teamStats, id)
	return nil
}

func (s *Store) listTournaments(status models.TournamentStatus) []models.Tournament {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tournaments := make([]models.Tournament, 0, len(s.tournaments))
	for _, t := range s.tournaments {
		if status != "" && t.Status != status {
			continue
		}
		tournaments = append(tournaments, *t)
	}
	sort.Slice(tournaments, func(i, j int) bool { return tournaments[i].ID < tournaments[j].ID })
	return tournaments
}

func (s *Store) tournament(id int) (models.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tournaments[id]
	if !ok {
		return models.Tournament{}, errNotFound
	}
	return *t, nil
}

func (s *Store) saveTournament(t models.Tournament) models.Tournament {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == 0 {
		t.ID = s.nextTournamentID
		s.nextTournamentID++
	}
	s.tournaments[t.ID] = &t
	return t
}

func (s *Store) deleteTournament(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tournaments[id]; !ok {
		return errNotFound
	}
	delete(s.tournaments, id)
	delete(s.registrations, id)
	delete(s.seeds, id)
	for mid, m := range s.matches {
		if m.TournamentID == id {
			delete(s.matches, mid)
		}
	}
	return nil
}

func (s *Store) registerTeam(tournamentID, teamID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tournaments[tournamentID]
	if !ok {
		return errNotFound
	}
	if _, ok := s.teams[teamID]; !ok {
		return errNotFound
	}
	for _, id := range s.registrations[tournamentID] {
		if id == teamID {
			return errAlreadyRegistered
		}
	}
	if t.MaxTeams != nil && len(s.registrations[tournamentID]) >= *t.MaxTeams {
		return errTournamentFull
	}
	s.registrations[tournamentID] = append(s.registrations[tournamentID], teamID)
	return nil
}

func (s *Store) unregisterTeam(tournamentID, teamID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.registrations[tournamentID]
	for i, id := range ids {
		if id == teamID {
			s.registrations[tournamentID] = append(ids[:i], ids[i+1:]...)
			if seeds, ok := s.seeds[tournamentID]; ok {
				delete(seeds, teamID)
			}
			return nil
		}
	}
	return errNotFound
}

// registeredTeams returns the tournament's teams with their seeds attached,
// seeded entries first.
func (s *Store) registeredTeams(tournamentID int) ([]models.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.tournaments[tournamentID]; !ok {
		return nil, errNotFound
	}
	teams := make([]models.Team, 0, len(s.registrations[tournamentID]))
	for _, teamID := range s.registrations[tournamentID] {
		t, ok := s.teams[teamID]
		if !ok {
			continue
		}
		clone := s.teamWithPlayersLocked(*t)
		if seed, ok := s.seeds[tournamentID][teamID]; ok {
			clone.Seed = intPtr(seed)
		}
		teams = append(teams, clone)
	}
	sort.SliceStable(teams, func(i, j int) bool {
		si, sj := teams[i].Seed, teams[j].Seed
		switch {
		case si != nil && sj != nil:
			return *si < *sj
		case si != nil:
			return true
		default:
			return false
		}
	})
	return teams, nil
}

func (s *Store) assignSeed(tournamentID, teamID, seed int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	registered := false
	for _, id := range s.registrations[tournamentID] {
		if id == teamID {
			registered = true
			break
		}
	}
	if !registered {
		return errNotFound
	}
	if s.seeds[tournamentID] == nil {
		s.seeds[tournamentID] = make(map[int]int)
	}
	s.seeds[tournamentID][teamID] = seed
	return nil
}

func (s *Store) tournamentMatches(tournamentID int) []models.Match {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.matchesLocked(tournamentID, "")
}

func (s *Store) listMatches(tournamentID int, status models.MatchStatus) []models.Match {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.matchesLocked(tournamentID, status)
}

func (s *Store) matchesLocked(tournamentID int, status models.MatchStatus) []models.Match {
	matches := make([]models.Match, 0)
	for _, m := range s.matches {
		if tournamentID > 0 && m.TournamentID != tournamentID {
			continue
		}
		if status != "" && m.Status != status {
			continue
		}
		matches = append(matches, s.matchWithTeamsLocked(*m))
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Round != matches[j].Round {
			return matches[i].Round < matches[j].Round
		}
		return matches[i].MatchNumber < matches[j].MatchNumber
	})
	return matches
}

func (s *Store) matchWithTeamsLocked(m models.Match) models.Match {
	if t, ok := s.teams[m.Team1ID]; ok {
		clone := *t
		m.Team1 = &clone
	}
	if t, ok := s.teams[m.Team2ID]; ok {
		clone := *t
		m.Team2 = &clone
	}
	if m.WinnerID != nil {
		if t, ok := s.teams[*m.WinnerID]; ok {
			clone := *t
			m.Winner = &clone
		}
	}
	return m
}

func (s *Store) match(id int) (models.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.matches[id]
	if !ok {
		return models.Match{}, errNotFound
	}
	return s.matchWithTeamsLocked(*m), nil
}

func (s *Store) saveMatch(m models.Match) models.Match {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID == 0 {
		m.ID = s.nextMatchID
		s.nextMatchID++
	}
	stored := m
	stored.Team1, stored.Team2, stored.Winner, stored.Tournament = nil, nil, nil, nil
	s.matches[m.ID] = &stored
	return s.matchWithTeamsLocked(m)
}

func (s *Store) playerRankings() []models.PlayerStat {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := make([]models.PlayerStat, 0, len(s.playerStats))
	for _, st := range s.playerStats {
		clone := *st
		if p, ok := s.users[st.PlayerID]; ok {
			u := *p
			clone.Player = &u
		}
		stats = append(stats, clone)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].RankingPoints > stats[j].RankingPoints })
	return stats
}

func (s *Store) teamRankings() []models.TeamStat {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := make([]models.TeamStat, 0, len(s.teamStats))
	for _, st := range s.teamStats {
		clone := *st
		if t, ok := s.teams[st.TeamID]; ok {
			team := s.teamWithPlayersLocked(*t)
			clone.Team = &team
		}
		stats = append(stats, clone)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].RankingPoints > stats[j].RankingPoints })
	return stats
}

func (s *Store) playerStat(playerID int) (models.PlayerStat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.playerStats[playerID]
	if !ok {
		return models.PlayerStat{}, errNotFound
	}
	return *st, nil
}

func (s *Store) teamStat(teamID int) (models.TeamStat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.teamStats[teamID]
	if !ok {
		return models.TeamStat{}, errNotFound
	}
	return *st, nil
}

// recordResult folds a completed match into the fixture stats. This is a
// development approximation of the backend's aggregation, not a faithful one.
func (s *Store) recordResult(m models.Match) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.WinnerID == nil || m.Team1Score == nil || m.Team2Score == nil {
		return
	}
	for _, teamID := range []int{m.Team1ID, m.Team2ID} {
		st, ok := s.teamStats[teamID]
		if !ok {
			continue
		}
		st.MatchesPlayed++
		st.SetsPlayed += *m.Team1Score + *m.Team2Score
		if teamID == *m.WinnerID {
			st.MatchesWon++
			st.RankingPoints += 10
		} else {
			st.MatchesLost++
		}
		if teamID == m.Team1ID {
			st.SetsWon += *m.Team1Score
			st.SetsLost += *m.Team2Score
		} else {
			st.SetsWon += *m.Team2Score
			st.SetsLost += *m.Team1Score
		}
	}
}
