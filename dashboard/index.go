package dashboard

import (
	"bytes"
	"encoding/json"
	"html/template"

	"go-antna/sampledata"
	"go-antna/types"
)

// Page is everything the index template renders for one session.
type Page struct {
	Title      string
	Region     string
	Admin      bool
	HasTheme   bool
	Alerts     []AlertCard
	Centers    []CenterCard
	CenterErr  string
	Updates    []UpdateCard
	Origins    []sampledata.Origin
	Checklist  []string
	Contacts   []sampledata.Contact
	Guidelines []sampledata.Guideline
	Examples   []sampledata.Scenario
	Status     []types.TableStatus
}

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"toJSON": toJSON,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8"/>
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css" />
  <script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
  {{if .HasTheme}}<link rel="stylesheet" href="/static/styles.css"/>{{end}}
</head>
<body>
  <div class="title-block">
    <h1>🐜 {{.Title}}</h1>
    <p><span class="status-indicator status-active"></span>{{if .Admin}}Crisis Simulation Control{{else}}Crisis Management Dashboard · {{.Region}}{{end}}</p>
  </div>

  {{range .Status}}{{if not .OK}}<div class="notice warning">⚠️ {{.Table}}: {{.Error}}</div>{{else if .Warning}}<div class="notice">ℹ️ {{.Table}}: {{.Warning}}</div>{{end}}{{end}}

  {{if .Admin}}
  <section id="scenario">
    <h2>💭 Generate Emergency Scenario</h2>
    <select id="example">
      <option value="">Custom</option>
      {{range .Examples}}<option value="{{.Prompt}}">{{.Name}}</option>{{end}}
    </select>
    <textarea id="prompt" rows="4"></textarea>
    <button onclick="generate()">Generate Scenario</button>
  </section>
  {{end}}

  <section id="chat">
    <h2>💬 Ask ANTNA</h2>
    <input id="query" placeholder="Where can I get medical supplies?"/>
    <button onclick="ask()">Send</button>
    <div id="answer" class="ai-response"></div>
    <div id="chat-map" style="height: 320px; display: none;"></div>
  </section>

  <section id="alerts">
    <h2>⚠️ Active Alerts</h2>
    {{range .Alerts}}
    <div class="alert-box">
      <h3>{{.Icon}} {{.Type}} Alert</h3>
      <p>📍 <b>Location:</b> {{.Location}}</p>
      <p>🕒 <b>Time:</b> {{.Time.Display}}</p>
      <p>⚠️ <b>Severity:</b> {{.Severity}}</p>
      <p>ℹ️ <b>Details:</b> {{.Description}}</p>
    </div>
    {{else}}<p>No active alerts.</p>{{end}}
  </section>

  <section id="centers">
    <h2>🏥 Critical Locations</h2>
    {{if .CenterErr}}<div class="notice warning">{{.CenterErr}}</div>{{end}}
    <select id="origin">{{range .Origins}}<option>{{.Name}}</option>{{end}}</select>
    {{range .Centers}}
    <div class="stats-box status-{{.Status}}">
      <h3>{{.Name}}</h3>
      <p><b>Type:</b> {{.Type}} · <b>Contact:</b> {{.Contact}}</p>
      <p><b>Occupancy:</b> {{.Current}}/{{.Capacity}} ({{printf "%.1f" .OccupancyPercent}}%)</p>
      <p>💧 {{.Resources.Water}} · 🍱 {{.Resources.Food}} · 🩺 {{.Resources.MedicalKits}} · ⚡ {{.Resources.Generators}} · 🛏️ {{.Resources.Beds}}</p>
    </div>
    {{end}}
    <div id="centers-map" style="height: 400px;"></div>
  </section>

  <section id="updates">
    <h2>📱 Social Updates</h2>
    {{range .Updates}}
    <div class="social-update {{.TrustClass}}">
      <strong style="color: {{.BadgeColor}}">{{.SourceType}}</strong> {{.Username}} {{.VerifiedMark}}
      <p>{{.Message}}</p>
      <span class="meta-item">📍 {{.Location}}</span>
      <span class="meta-item">🕒 {{.Timestamp.Display}}</span>
      <span class="meta-item">💯 Trust: {{printf "%.2f" .TrustScore}}</span>
      <span class="meta-item">👥 {{.Engagement}}</span>
    </div>
    {{end}}
  </section>

  <section id="prep">
    <h2>✅ Emergency Preparedness</h2>
    {{range .Checklist}}<label><input type="checkbox" class="prep-item" value="{{.}}" onchange="score()"/> {{.}}</label><br/>{{end}}
    <h3>🎯 Readiness Score</h3>
    <h2 id="readiness">0.0%</h2>
    <h3>☎️ Emergency Contacts</h3>
    {{range .Contacts}}<p><b>{{.Service}}:</b> {{.Number}}</p>{{end}}
    {{range .Guidelines}}<h4>{{.Phase}}:</h4><ul>{{range .Steps}}<li>{{.}}</li>{{end}}</ul>{{end}}
  </section>

  <script>
    const api = "/api/antna";
    const origins = {{toJSON .Origins}};

    function drawGeoJSON(id, fc) {
      const el = document.getElementById(id);
      el.style.display = "block";
      if (el._map) { el._map.remove(); }
      const map = L.map(el);
      el._map = map;
      L.tileLayer("https://{s}.basemaps.cartocdn.com/light_all/{z}/{x}/{y}{r}.png").addTo(map);
      const layer = L.geoJSON(fc, {
        style: f => ({color: f.properties.stroke || "green", weight: 4, opacity: 0.8}),
        onEachFeature: (f, l) => l.bindPopup(f.properties.name || ("Route " + f.properties.distance_km + " km")),
      }).addTo(map);
      map.fitBounds(layer.getBounds());
    }

    async function ask() {
      const res = await fetch(api + "/chat", {method: "POST", headers: {"Content-Type": "application/json"},
        body: JSON.stringify({query: document.getElementById("query").value, origin: document.getElementById("origin").value})});
      const body = await res.json();
      const out = document.getElementById("answer");
      out.textContent = body.error || body.answer;
      (body.notices || []).forEach(n => out.textContent += "\n" + n);
      if (body.map) { drawGeoJSON("chat-map", body.map); }
    }

    async function score() {
      const checked = [...document.querySelectorAll(".prep-item:checked")].map(e => e.value);
      const res = await fetch(api + "/prep/score", {method: "POST", headers: {"Content-Type": "application/json"}, body: JSON.stringify({checked})});
      const body = await res.json();
      const el = document.getElementById("readiness");
      el.textContent = body.percent.toFixed(1) + "%";
      el.style.color = body.color;
    }

    async function generate() {
      const res = await fetch(api + "/admin/scenario", {method: "POST", headers: {"Content-Type": "application/json"},
        body: JSON.stringify({prompt: document.getElementById("prompt").value})});
      if (res.ok || res.status === 207) { location.reload(); } else { alert((await res.json()).error); }
    }

    const example = document.getElementById("example");
    if (example) { example.onchange = () => { document.getElementById("prompt").value = example.value; }; }

    fetch(api + "/centers/map").then(r => r.json()).then(fc => { if (fc.features && fc.features.length) { drawGeoJSON("centers-map", fc); } });
  </script>
</body>
</html>
`))

func toJSON(v interface{}) (template.JS, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}

func RenderIndex(p Page) ([]byte, error) {
	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
