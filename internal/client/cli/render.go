package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/userdir/internal/client/models"
)

// MapLink returns a maps URL for g, or "" when g is nil.
func MapLink(g *models.Geo) string {
	if g == nil {
		return ""
	}
	return "https://www.google.com/maps?q=" + formatCoord(g.Lat) + "," + formatCoord(g.Lng)
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func renderUserList(w io.Writer, users []models.User) {
	if len(users) == 0 {
		fmt.Fprintln(w, "No users found.")
		return
	}

	fmt.Fprintf(w, "%d users found\n", len(users))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tUSERNAME\tEMAIL\tCOMPANY")
	for _, u := range users {
		company := ""
		if u.Company != nil {
			company = u.Company.Name
		}
		fmt.Fprintf(tw, "%s\t%s\t@%s\t%s\t%s\n", u.ID, u.Name, u.Username, u.Email, company)
	}
	_ = tw.Flush()
}

func renderUserDetail(w io.Writer, u models.User) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	line := func(label, value string) {
		if value != "" {
			fmt.Fprintf(tw, "  %s\t%s\n", label, value)
		}
	}

	fmt.Fprintln(tw, "Basic Information")
	line("Name", u.Name)
	line("Username", "@"+u.Username)
	line("Email", u.Email)
	line("Phone", u.Phone)
	if u.Website != "" {
		line("Website", "https://"+u.Website)
	}

	if a := u.Address; a != nil {
		fmt.Fprintln(tw, "Address")
		street := a.Street
		if a.Suite != "" {
			street += ", " + a.Suite
		}
		line("Street", street)
		line("City", a.City)
		line("Zipcode", a.Zipcode)
		if a.Geo != nil {
			line("Location", formatCoord(a.Geo.Lat)+", "+formatCoord(a.Geo.Lng))
			line("Map", MapLink(a.Geo))
		}
	}

	if c := u.Company; c != nil {
		fmt.Fprintln(tw, "Company")
		line("Name", c.Name)
		if c.CatchPhrase != "" {
			line("Catchphrase", strconv.Quote(c.CatchPhrase))
		}
		line("Business", c.BS)
	}
	_ = tw.Flush()
}

func renderHealth(w io.Writer, h models.HealthStatus) {
	parts := []string{"status: " + h.Status}
	if h.Service != "" {
		parts = append(parts, "service: "+h.Service)
	}
	if h.Version != "" {
		parts = append(parts, "version: "+h.Version)
	}
	fmt.Fprintln(w, strings.Join(parts, ", "))
}
