package dashboard

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/mwiater/capdash/internal/benchmarks"
	"github.com/mwiater/capdash/internal/capability"
	"github.com/mwiater/capdash/internal/logging"
)

// Title is the site name shown in the browser tab and sidebar.
const Title = "AI Capability Evaluation"

type checklistItem struct {
	CapabilityInfo
	Checked bool
}

type benchmarkView struct {
	Label     string
	File      string
	Content   string
	Generated bool
}

type pageData struct {
	Title        string
	Nav          []benchmarks.NavGroup
	Checklist    []checklistItem
	Legend       []capability.CategoryColor
	SelectedJSON template.JS
	Benchmark    *benchmarkView
}

func (s *Server) handleOverviewPage(w http.ResponseWriter, r *http.Request) {
	checked := make(map[string]bool, len(s.defaults))
	for _, name := range s.defaults {
		checked[name] = true
	}
	infos := s.capabilityInfos()
	items := make([]checklistItem, len(infos))
	for i, info := range infos {
		items[i] = checklistItem{CapabilityInfo: info, Checked: checked[info.Name]}
	}

	selected, err := json.Marshal(s.defaults)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.renderPage(w, pageData{
		Title:        Title,
		Nav:          s.pages.Nav(r.URL.Path),
		Checklist:    items,
		Legend:       capability.Palette(),
		SelectedJSON: template.JS(selected),
	})
}

func (s *Server) handleBenchmarkPage(w http.ResponseWriter, r *http.Request) {
	page, err := s.pages.Lookup(r.PathValue("slug"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	content, ok, err := benchmarks.Embed(s.opts.GraphsDir, page)
	if err != nil {
		logging.LogError(err, "read %s", page.File)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.renderPage(w, pageData{
		Title: page.Label + " | " + Title,
		Nav:   s.pages.Nav(r.URL.Path),
		Benchmark: &benchmarkView{
			Label:     page.Label,
			File:      page.File,
			Content:   content,
			Generated: ok,
		},
	})
}

func (s *Server) renderPage(w http.ResponseWriter, data pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		logging.LogError(err, "render page")
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

var pageTemplate = template.Must(template.New("dashboard-page").Parse(pageTemplateHTML))

const pageTemplateHTML = `<!DOCTYPE html>
<html lang="en" data-bs-theme="dark">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css">
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap-icons@1.11.3/font/bootstrap-icons.min.css">
  <script src="https://cdn.plot.ly/plotly-2.35.2.min.js"></script>
  <style>
    body { background-color: #0a0a15; color: #e0e0f0; }
    #sidebar { position: fixed; top: 0; left: 0; bottom: 0; width: 16rem; padding: 2rem 1rem; background-color: #12121e; overflow-y: auto; }
    #content { margin-left: 17rem; padding: 2rem 1rem; }
    .nav-link { color: #c0c0d8; }
    .nav-link.active { background-color: #636EFA; color: #fff; border-radius: .375rem; }
    .card { background-color: #12121e; border-color: #2a2a3a; }
    .stat-value { font-size: 1.6rem; font-weight: 600; }
    .legend-swatch { display: inline-block; width: .8rem; height: .8rem; border-radius: 50%; margin-right: .4rem; }
    @media (max-width: 768px) { #sidebar { position: static; width: auto; } #content { margin-left: 0; } }
  </style>
</head>
<body>
  <nav id="sidebar">
    <p class="lead">AI capability evaluation</p>
    <hr>
    {{- range .Nav }}
    <div class="mb-4">
      <h5>{{ .Name }}</h5>
      <hr>
      {{- range .Links }}
      <a href="{{ .Path }}" class="nav-link mb-1{{ if .Active }} active{{ end }}"><i class="{{ .Icon }} me-1"></i>{{ .Label }}</a>
      {{- end }}
    </div>
    {{- end }}
  </nav>

  <main id="content">
  {{- with .Benchmark }}
    <h1>{{ .Label }}</h1>
    {{- if .Generated }}
    <iframe srcdoc="{{ .Content }}" style="width: 100%; height: 800px; border: none;"></iframe>
    {{- else }}
    <div class="alert alert-secondary">{{ .File }} has not been generated yet. Run <code>capdash graphs</code> to build it.</div>
    {{- end }}
  {{- else }}
    <h1>{{ .Title }}</h1>
    <div class="alert alert-danger d-none" id="error"></div>
    <div class="row g-3 mb-4">
      <div class="col"><div class="card p-3"><div>Records</div><div class="stat-value" id="total-records">-</div></div></div>
      <div class="col"><div class="card p-3"><div>Benchmarks</div><div class="stat-value" id="total-benchmarks">-</div></div></div>
      <div class="col"><div class="card p-3"><div>Capabilities</div><div class="stat-value" id="total-capabilities">-</div></div></div>
      <div class="col"><div class="card p-3"><div>Restaurants</div><div class="stat-value" id="restaurants">-</div></div></div>
      <div class="col"><div class="card p-3"><div>Countries</div><div class="stat-value" id="countries">-</div></div></div>
      <div class="col"><div class="card p-3"><div>Cities</div><div class="stat-value" id="cities">-</div></div></div>
      <div class="col"><div class="card p-3"><div>Top Cuisine</div><div class="stat-value" id="top-cuisine">-</div></div></div>
    </div>
    <div class="row g-3">
      <div class="col-md-3">
        <div class="card p-3 mb-3">
          <h5>Capabilities</h5>
          {{- range .Checklist }}
          <div class="form-check">
            <input class="form-check-input capability" type="checkbox" value="{{ .Name }}" id="cap-{{ .Name }}"{{ if .Checked }} checked{{ end }}>
            <label class="form-check-label" for="cap-{{ .Name }}"><span class="legend-swatch" style="background-color: {{ .Color }}"></span>{{ .Label }}</label>
          </div>
          {{- end }}
        </div>
        <div class="card p-3 mb-3">
          <h5>Statistics</h5>
          <ul class="list-unstyled mb-0" id="stats-panel"></ul>
        </div>
        <div class="card p-3">
          <h5>Categories</h5>
          {{- range .Legend }}
          <div><span class="legend-swatch" style="background-color: {{ .Color }}"></span>{{ .Category }}</div>
          {{- end }}
        </div>
      </div>
      <div class="col-md-9"><div id="figure"></div></div>
    </div>
    <script>
      let selected = {{ .SelectedJSON }};

      function showError(message) {
        const el = document.getElementById("error");
        el.textContent = message;
        el.classList.toggle("d-none", !message);
      }

      async function loadOverview() {
        const resp = await fetch("/api/overview");
        const body = await resp.json();
        if (!body.ok) { showError(body.error); return; }
        document.getElementById("total-records").textContent = body.summary.total_records;
        document.getElementById("total-benchmarks").textContent = body.summary.total_benchmarks;
        document.getElementById("total-capabilities").textContent = body.summary.total_capabilities;
        document.getElementById("restaurants").textContent = body.table.restaurants;
        document.getElementById("countries").textContent = body.table.countries;
        document.getElementById("cities").textContent = body.table.cities;
        document.getElementById("top-cuisine").textContent = body.table.top_cuisine;
      }

      async function refresh() {
        const resp = await fetch("/api/dashboard", {
          method: "POST",
          headers: {"Content-Type": "application/json"},
          body: JSON.stringify({selected: selected}),
        });
        const body = await resp.json();
        if (!body.ok) { showError(body.error); return; }
        showError("");
        Plotly.react("figure", body.figure.data, body.figure.layout, {responsive: true});
        const panel = document.getElementById("stats-panel");
        panel.replaceChildren(...body.panel.map((line) => {
          const li = document.createElement("li");
          li.textContent = line.label + ": " + line.value;
          return li;
        }));
      }

      document.querySelectorAll("input.capability").forEach((box) => {
        box.addEventListener("change", () => {
          selected = selected.filter((name) => name !== box.value);
          if (box.checked) { selected.push(box.value); }
          refresh();
        });
      });

      loadOverview();
      refresh();
    </script>
  {{- end }}
  </main>
</body>
</html>
`
