package health

import (
	"bytes"
	"html/template"
)

var dashboardTmpl = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Axiso Green · API Status</title>
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <style>
    :root { --green: #8CC63F; --dark: #1F3B2D; --muted: #64748b; --bg: #F6F8F4; }
    body { background: var(--bg); color: var(--dark); font-family: system-ui, sans-serif; margin: 0; padding: 40px 20px; }
    .container { max-width: 960px; margin: 0 auto; }
    h1 { font-size: 42px; font-weight: 900; margin: 0 0 8px; }
    h1.issue { color: #B91C1C; }
    .sub { color: var(--muted); font-weight: 700; margin-bottom: 28px; }
    .grid { display: grid; grid-template-columns: repeat(3, 1fr); gap: 16px; }
    .card { background: #fff; border-radius: 20px; padding: 28px; box-shadow: 0 20px 60px -20px rgba(31,59,45,0.15); }
    .label { text-transform: uppercase; font-size: 11px; font-weight: 900; letter-spacing: 2px; color: #94a3b8; margin-bottom: 18px; }
    .big { font-size: 36px; font-weight: 900; margin-bottom: 10px; }
    .row { display: flex; justify-content: space-between; padding: 6px 0; font-size: 14px; font-weight: 700; border-bottom: 1px solid #f1f5f9; }
    .ok { color: var(--green); } .err { color: #EF4444; }
    .last { margin-top: 16px; font-family: monospace; font-size: 13px; color: var(--muted); }
    @media (max-width: 800px) { .grid { grid-template-columns: 1fr; } }
  </style>
</head>
<body>
  <div class="container">
    <h1 id="headline"{{if ne .Status "ok"}} class="issue"{{end}}>{{if eq .Status "ok"}}All Systems Operational{{else}}System Issues Detected{{end}}</h1>
    <div class="sub">Axiso project administration API</div>
    <div class="grid">
      <div class="card">
        <div class="label">Traffic</div>
        <div class="big" id="total-req">{{.Traffic.TotalRequests}}</div>
        <div class="row"><span>Successful</span><span id="success-count">{{.Traffic.SuccessCount}}</span></div>
        <div class="row"><span>Failed</span><span id="failed-count">{{.Traffic.FailedCount}}</span></div>
        <div class="row"><span>Success Rate</span><span id="success-rate">{{.Traffic.SuccessRate}}%</span></div>
        <div class="row"><span>Avg Latency</span><span id="avg-time">{{.Traffic.AvgResponseTime}}ms</span></div>
      </div>
      <div class="card">
        <div class="label">Runtime</div>
        <div class="big" id="uptime">{{.Runtime.UptimeSeconds}}s</div>
        <div class="row"><span>Heap Used</span><span id="mem-heap">{{.Runtime.Memory.HeapUsed}} MB</span></div>
        <div class="row"><span>Goroutines</span><span id="goroutines">{{.Runtime.Goroutines}}</span></div>
        <div class="row"><span>Platform</span><span>{{.Runtime.Platform}}</span></div>
      </div>
      <div class="card">
        <div class="label">Dependencies</div>
        {{range $name, $dep := .Dependencies}}
        <div class="row"><span>{{$name}}</span><span id="dep-{{$name}}" class="{{if eq $dep.Status "connected"}}ok{{else}}err{{end}}">{{$dep.Status}}</span></div>
        {{end}}
      </div>
    </div>
    <div class="last" id="last-req">{{with .Traffic.LastRequest}}{{index . "method"}} {{index . "path"}}{{else}}-{{end}}</div>
  </div>
  <script>
    const update = (d) => {
      document.getElementById('total-req').innerText = d.traffic.totalRequests;
      document.getElementById('success-count').innerText = d.traffic.successCount;
      document.getElementById('failed-count').innerText = d.traffic.failedCount;
      document.getElementById('success-rate').innerText = d.traffic.successRate + '%';
      document.getElementById('avg-time').innerText = d.traffic.avgResponseTime + 'ms';
      document.getElementById('uptime').innerText = d.runtime.uptimeSeconds + 's';
      document.getElementById('mem-heap').innerText = d.runtime.memory.heapUsed + ' MB';
      for (const [name, dep] of Object.entries(d.dependencies)) {
        const el = document.getElementById('dep-' + name);
        if (el) { el.innerText = dep.status; el.className = dep.status === 'connected' ? 'ok' : 'err'; }
      }
    };
    setInterval(async () => { try { update(await (await fetch('/health/json')).json()); } catch (e) {} }, 10000);
  </script>
</body>
</html>`))

// RenderDashboardHTML renders the status page served at GET /.
func RenderDashboardHTML(h CollectResult) (string, error) {
	var buf bytes.Buffer
	if err := dashboardTmpl.Execute(&buf, h); err != nil {
		return "", err
	}
	return buf.String(), nil
}
