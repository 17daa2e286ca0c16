package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/sdeshpande/CivicDesk/internal/client/api"
	"github.com/sdeshpande/CivicDesk/internal/client/navigation"
	"github.com/sdeshpande/CivicDesk/internal/client/session"
	"github.com/sdeshpande/CivicDesk/internal/models"
	"go.uber.org/zap"
)

var (
	version   string
	buildDate string
)

// shell holds the state of one interactive intake/review session.
type shell struct {
	scanner *bufio.Scanner
	store   *session.Store
	roles   *session.RoleContext
	auth    *api.Authenticator
	pipe    *api.Pipeline
	repo    *api.Repository
	log     *zap.Logger

	// current is the destination the user is "on"; logout resets it to
	// the login screen.
	current navigation.Destination

	// draft survives failed submissions so the user can retry.
	draft    models.ComplaintDraft
	hasDraft bool
}

// commandDest maps shell commands onto the destination they belong to.
// A command runs only when the active role can reach its destination.
var commandDest = map[string]navigation.Destination{
	"form":     navigation.DestComplaintForm,
	"retry":    navigation.DestComplaintForm,
	"login":    navigation.DestLogin,
	"logout":   navigation.DestLogin,
	"list":     navigation.DestComplaintList,
	"edit":     navigation.DestEditComplaint,
	"resolved": navigation.DestResolvedComplaints,
}

func (s *shell) prompt(label string) string {
	fmt.Print(label)
	if !s.scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(s.scanner.Text())
}

// run is the interactive loop. Each iteration reads one command, checks
// it against the navigation gate and dispatches.
func (s *shell) run() {
	s.roles.Subscribe(func(r models.Role) {
		if r == models.RoleGuest {
			s.current = navigation.DestLogin
		}
		fmt.Printf("Hello, %s\n", roleGreeting(r))
	})

	fmt.Printf("Hello, %s\n", roleGreeting(s.roles.Role()))
	for {
		fmt.Print("civicdesk> ")
		if !s.scanner.Scan() {
			break
		}
		line := strings.TrimSpace(s.scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		cmd := args[0]

		if dest, gated := commandDest[cmd]; gated {
			if !navigation.CanReach(s.roles.Role(), dest) {
				fmt.Printf("'%s' is not available for %s\n", cmd, s.roles.Role())
				continue
			}
			s.current = dest
		}

		switch cmd {
		case "help":
			fmt.Println("Available commands: help, whoami, form, retry, login, logout, list, resolved, edit <id>, exit")
		case "whoami":
			fmt.Printf("role: %s\n", s.roles.Role())
		case "form":
			s.fillForm()
			s.submitDraft()
		case "retry":
			if !s.hasDraft {
				fmt.Println("No pending complaint to retry")
				continue
			}
			s.submitDraft()
		case "login":
			s.login()
		case "logout":
			session.Logout(s.store, s.roles, s.log)
			fmt.Println("Signed out")
		case "list":
			s.list(false)
		case "resolved":
			s.list(true)
		case "edit":
			if len(args) < 2 {
				fmt.Println("Usage: edit <id>")
				continue
			}
			s.edit(args[1])
		case "exit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

func roleGreeting(r models.Role) string {
	if r == models.RoleGuest {
		return "Guest"
	}
	return string(r)
}

// fillForm prompts for every intake field and stores the result as the
// pending draft.
func (s *shell) fillForm() {
	draft := models.ComplaintDraft{}
	draft.ReporterName = s.prompt("Name: ")
	draft.ContactNumber = s.prompt("Contact no: ")
	draft.Area = s.prompt("Address: ")

	cat := s.prompt("Complaint for (water/light/road/pollution/security): ")
	draft.Category = models.Category(cat)
	if !models.ValidCategory(draft.Category) {
		draft.Category = models.CategoryWater
	}

	draft.Description = s.prompt("Problem: ")

	if dateStr := s.prompt("Date (YYYY-MM-DD): "); dateStr != "" {
		if d, err := time.Parse("2006-01-02", dateStr); err == nil {
			draft.IncidentDate = d
		} else {
			fmt.Println("Unrecognized date, leaving it empty")
		}
	}

	draft.ImagePath = s.prompt("Image file (leave empty to skip): ")

	if loc := s.prompt("Location lat,lon (leave empty to skip): "); loc != "" {
		var lat, lon float64
		if _, err := fmt.Sscanf(loc, "%f,%f", &lat, &lon); err == nil {
			draft.Location = &models.Geolocation{Latitude: lat, Longitude: lon}
			fmt.Printf("View on map: https://www.google.com/maps/search/?api=1&query=%v,%v\n", lat, lon)
		} else {
			fmt.Println("Unrecognized location, skipping")
		}
	}

	s.draft = draft
	s.hasDraft = true
}

// submitDraft sends the pending draft. The draft is only cleared on
// success; any failure keeps it so 'retry' can resend it.
func (s *shell) submitDraft() {
	id, err := s.pipe.Submit(context.Background(), s.draft)
	if err != nil {
		if err == api.ErrSubmitInFlight {
			return
		}
		fmt.Printf("Could not submit complaint: %v\n", err)
		fmt.Println("Your draft was kept; type 'retry' to send it again.")
		return
	}
	s.draft = models.ComplaintDraft{}
	s.hasDraft = false
	fmt.Printf("Your complaint has been submitted successfully (id %s).\n", id)
}

func (s *shell) login() {
	username := s.prompt("Username: ")
	password := s.prompt("Password: ")
	office := s.prompt("Office (front/back/admin): ")

	hint := models.RoleFrontOffice
	switch office {
	case "back":
		hint = models.RoleBackOffice
	case "admin":
		hint = models.RoleAdmin
	}

	sess, err := s.auth.SignIn(context.Background(), username, password, hint)
	if err != nil {
		fmt.Printf("Login failed: %v\n", err)
		return
	}
	s.current = navigation.Landing(sess.Role)
	fmt.Printf("Landing on %s\n", s.current)
}

func (s *shell) list(resolvedOnly bool) {
	complaints, err := s.repo.List(context.Background())
	if err != nil {
		fmt.Printf("Failed to load complaints: %v\n", err)
		return
	}
	if resolvedOnly {
		complaints = api.Resolved(complaints)
	}
	complaints = api.SortByIncidentDate(complaints, true)

	fmt.Printf("%-6s %-20s %-20s %-30s %-12s %s\n",
		"ID", "Name", "Address", "Problem", "Date", "Status")
	for _, c := range complaints {
		fmt.Printf("%-6s %-20s %-20s %-30s %-12s %s\n",
			c.ID, c.ReporterName, c.Area, c.Description, c.IncidentDate,
			c.Status.DisplayName())
	}
}

func (s *shell) edit(id string) {
	c, err := s.repo.GetByID(context.Background(), id)
	if err != nil {
		fmt.Printf("Failed to load complaint: %v\n", err)
		return
	}
	fmt.Printf("Name: %s\nContact: %s\nAddress: %s\nCategory: %s\nProblem: %s\nDate: %s\nStatus: %s\nNote: %s\n",
		c.ReporterName, c.ContactNumber, c.Area, c.Category, c.Description,
		c.IncidentDate, c.Status.DisplayName(), c.AdminNote)

	statusStr := s.prompt("New status (pending/inprocess/complete/incomplete): ")
	status := models.Status(statusStr)
	if !models.ValidStatus(status) {
		fmt.Println("Unknown status, keeping the current one")
		status = c.Status
	}
	note := s.prompt("Note: ")
	imagePath := s.prompt("Replacement image (leave empty to keep): ")

	if err := s.repo.UpdateStatus(context.Background(), id, status, note, imagePath); err != nil {
		fmt.Printf("Failed to update complaint: %v\n", err)
		return
	}
	fmt.Println("Complaint updated successfully")
}

// main parses command-line flags and starts the interactive shell.
func main() {
	var (
		baseURL     string
		sessionFile string
		debug       bool
		showVer     bool
	)

	flag.StringVar(&baseURL, "url", "http://localhost:8080", "server base URL")
	flag.StringVar(&sessionFile, "session", "session.json", "path to the session file")
	flag.BoolVar(&debug, "debug", false, "log request metadata")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("CivicDesk Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	zapLogger := zap.NewNop()
	if debug {
		var err error
		zapLogger, err = zap.NewDevelopment()
		if err != nil {
			log.Fatal(err)
		}
	}

	store, err := session.Open(sessionFile)
	if err != nil {
		log.Fatal(err)
	}
	roles := session.NewRoleContext(store)
	client := api.New(strings.TrimRight(baseURL, "/"), zapLogger)

	s := &shell{
		scanner: bufio.NewScanner(os.Stdin),
		store:   store,
		roles:   roles,
		auth:    &api.Authenticator{Client: client, Store: store, Roles: roles},
		pipe: &api.Pipeline{
			Client: client,
			Notify: func(id string) {
				fmt.Printf("\n[notification] complaint %s received by the office\n", id)
			},
		},
		repo:    &api.Repository{Client: client},
		log:     zapLogger,
		current: navigation.DestComplaintForm,
	}
	s.run()
}
