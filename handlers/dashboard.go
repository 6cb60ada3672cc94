package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-antna/dashboard"
	"go-antna/locator"
	"go-antna/sampledata"
	"go-antna/types"
	"go-antna/updates"
)

const defaultMinTrust = 0.7

func GetAlerts(c *gin.Context) {
	tables := currentSession(c).Tables()
	c.JSON(http.StatusOK, gin.H{
		"alerts": dashboard.AlertCards(tables.Alerts),
		"count":  len(tables.Alerts),
	})
}

func GetCenters(c *gin.Context) {
	tables := currentSession(c).Tables()
	facilities, err := locator.FilterByType(tables.Facilities, c.Query("type"))
	if err != nil {
		badRequest(c, err)
		return
	}

	cards, err := dashboard.CenterCards(facilities, tables.Resources)
	if err != nil {
		joinFailed(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"centers": cards,
		"count":   len(cards),
	})
}

// joinFailed reports a facility that has no resource report.
func joinFailed(c *gin.Context, err error) {
	if errors.Is(err, types.ErrResourceNotFound) {
		zap.S().Warnw("facility without resources", "err", err)
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// GetCentersMap returns the facility map as GeoJSON. With route=true it
// adds the user's marker and a path to the chosen (or nearest) facility.
func GetCentersMap(c *gin.Context, loc *locator.Locator) {
	tables := currentSession(c).Tables()
	facilities, err := locator.FilterByType(tables.Facilities, c.Query("type"))
	if err != nil {
		badRequest(c, err)
		return
	}

	origin, ok := resolveOrigin(c.Query("origin"))
	if !ok {
		badRequest(c, fmt.Errorf("unknown origin %q", c.Query("origin")))
		return
	}

	withRoute := false
	if v := c.Query("route"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			badRequest(c, fmt.Errorf("route must be true or false"))
			return
		}
		withRoute = b
	}

	if !withRoute {
		fc, err := dashboard.CentersMap(facilities, tables.Resources, nil, nil)
		if err != nil {
			joinFailed(c, err)
			return
		}
		c.JSON(http.StatusOK, fc)
		return
	}

	var target types.Facility
	if name := c.Query("facility"); name != "" {
		f, found := types.FindFacility(facilities, name)
		if !found {
			badRequest(c, fmt.Errorf("unknown facility %q", name))
			return
		}
		target = f
	} else {
		f, err := locator.Nearest(facilities, origin.At)
		if err != nil {
			badRequest(c, err)
			return
		}
		target = f
	}

	route, notice := loc.Route(c.Request.Context(), origin.At, target.Coordinate())
	fc, err := dashboard.CentersMap(facilities, tables.Resources, &origin, &route)
	if err != nil {
		joinFailed(c, err)
		return
	}
	fc.ExtraMembers = map[string]interface{}{
		"destination": target.Name,
	}
	if notice != "" {
		fc.ExtraMembers["notice"] = string(notice)
	}
	c.JSON(http.StatusOK, fc)
}

func GetUpdates(c *gin.Context) {
	minTrust := defaultMinTrust
	if v := c.Query("min_trust"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			badRequest(c, fmt.Errorf("min_trust must be a number"))
			return
		}
		minTrust = f
	}

	allowed, err := updates.ParseSources(c.QueryArray("source"))
	if err != nil {
		badRequest(c, err)
		return
	}

	ranked, err := updates.FilterAndRank(currentSession(c).Tables().Updates, minTrust, allowed)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"updates":   dashboard.UpdateCards(ranked),
		"count":     len(ranked),
		"min_trust": minTrust,
	})
}

func GetOrigins(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"origins": sampledata.Origins(),
		"default": sampledata.DefaultOrigin,
	})
}

func GetPrep(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"checklist":  sampledata.Checklist(),
		"contacts":   sampledata.Contacts(),
		"guidelines": sampledata.Guidelines(),
	})
}

func ScorePrep(c *gin.Context) {
	var request struct {
		Checked []string `json:"checked"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		badRequest(c, err)
		return
	}

	r, err := dashboard.ScoreReadiness(request.Checked)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// Site holds what the index page needs beyond the session tables.
type Site struct {
	Title  string
	Region string
	Admin  bool
	Theme  []byte
}

func Index(c *gin.Context, site Site) {
	sess := currentSession(c)
	tables := sess.Tables()

	page := dashboard.Page{
		Title:      site.Title,
		Region:     site.Region,
		Admin:      site.Admin,
		HasTheme:   len(site.Theme) > 0,
		Alerts:     dashboard.AlertCards(tables.Alerts),
		Origins:    sampledata.Origins(),
		Checklist:  sampledata.Checklist(),
		Contacts:   sampledata.Contacts(),
		Guidelines: sampledata.Guidelines(),
		Status:     sess.Status(),
	}
	if site.Admin {
		page.Examples = sampledata.ScenarioExamples()
	}

	centers, err := dashboard.CenterCards(tables.Facilities, tables.Resources)
	if err != nil {
		page.CenterErr = err.Error()
	}
	page.Centers = centers

	ranked, _ := updates.FilterAndRank(tables.Updates, defaultMinTrust, updates.AllSources())
	page.Updates = dashboard.UpdateCards(ranked)

	html, err := dashboard.RenderIndex(page)
	if err != nil {
		zap.S().Errorw("rendering index", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not render page"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

func Theme(c *gin.Context, css []byte) {
	c.Data(http.StatusOK, "text/css; charset=utf-8", css)
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
