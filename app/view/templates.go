package view

const dashboardTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta name="robots" content="noindex,nofollow">
<title>{{.Title}}</title>
<style>
:root {
  --bg: #f6f7fb; --fg: #1f2430; --card: #fff; --border: #e3e6ee; --muted: #6b7280;
  --accent: #4f46e5; --star: #f5a623;
  --more: #16a34a; --less: #d97706; --stop: #dc2626;
}
* { box-sizing: border-box; }
body { margin: 0; padding: 24px; font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; background: var(--bg); color: var(--fg); font-size: 14px; }
h1 { font-size: 22px; margin: 0 0 16px; }
.muted { color: var(--muted); font-size: 12px; }
.stars { color: var(--star); letter-spacing: 1px; white-space: nowrap; }
.kpis { display: grid; grid-template-columns: repeat(auto-fit, minmax(220px, 1fr)); gap: 12px; margin-bottom: 16px; }
.kpi { background: var(--card); border: 1px solid var(--border); border-radius: 10px; padding: 14px 16px; }
.kpi .label { font-size: 12px; color: var(--muted); text-transform: uppercase; letter-spacing: .04em; }
.kpi .value { font-size: 24px; font-weight: 700; margin-top: 4px; }
.bars { background: var(--card); border: 1px solid var(--border); border-radius: 10px; padding: 14px 16px; margin-bottom: 16px; }
.bar { display: grid; grid-template-columns: 90px 1fr 60px; gap: 10px; align-items: center; margin: 6px 0; }
.bar .track { background: #eef0f5; border-radius: 6px; height: 12px; overflow: hidden; }
.bar .fill { background: var(--accent); height: 100%; }
.bar .pct { text-align: right; font-variant-numeric: tabular-nums; }
.tag { display: inline-block; padding: 2px 8px; border-radius: 999px; font-size: 12px; font-weight: 600; background: #eef0f5; margin-right: 4px; }
.tag.more { background: #dcfce7; color: var(--more); }
.tag.less { background: #fef3c7; color: var(--less); }
.tag.stop { background: #fee2e2; color: var(--stop); }
form.filters { display: flex; flex-wrap: wrap; gap: 8px; align-items: flex-end; background: var(--card); border: 1px solid var(--border); border-radius: 10px; padding: 12px 16px; margin-bottom: 16px; }
form.filters label { display: flex; flex-direction: column; font-size: 12px; color: var(--muted); gap: 4px; }
form.filters input, form.filters select { padding: 6px 8px; border: 1px solid var(--border); border-radius: 6px; font-size: 13px; background: #fff; }
form.filters input[type=text] { min-width: 280px; }
.btn { display: inline-block; padding: 7px 14px; border-radius: 6px; border: 1px solid var(--border); background: #fff; color: var(--fg); cursor: pointer; text-decoration: none; font-size: 13px; }
.btn.primary { background: var(--accent); border-color: var(--accent); color: #fff; }
.btn.small { padding: 2px 8px; font-size: 12px; }
table { width: 100%; border-collapse: collapse; background: var(--card); border: 1px solid var(--border); border-radius: 10px; overflow: hidden; }
th, td { text-align: left; padding: 8px 10px; border-bottom: 1px solid var(--border); vertical-align: top; }
th { background: #f0f2f7; font-size: 12px; text-transform: uppercase; letter-spacing: .04em; color: var(--muted); }
td.trunc { max-width: 200px; overflow: hidden; text-overflow: ellipsis; white-space: nowrap; }
td.empty { text-align: center; color: var(--muted); padding: 24px; }
.pagination { display: flex; flex-wrap: wrap; gap: 4px; margin: 16px 0; }
.pagination .page { padding: 5px 10px; border: 1px solid var(--border); border-radius: 6px; background: #fff; color: var(--fg); text-decoration: none; }
.pagination .page.active { background: var(--accent); border-color: var(--accent); color: #fff; }
.pagination .page.disabled { color: var(--muted); pointer-events: none; opacity: .6; }
.pagination .gap { padding: 5px 4px; color: var(--muted); }
footer { margin-top: 24px; }
.modal { position: fixed; inset: 0; background: rgba(17, 24, 39, .55); display: none; align-items: center; justify-content: center; padding: 16px; }
.modal.open { display: flex; }
.modal .dialog { background: #fff; border-radius: 12px; max-width: 640px; width: 100%; max-height: 90vh; overflow: auto; padding: 18px 20px; }
.modal .head { display: flex; justify-content: space-between; align-items: center; margin-bottom: 12px; }
.modal .head h2 { font-size: 18px; margin: 0; }
.modal dl { display: grid; grid-template-columns: 130px 1fr; gap: 6px 12px; margin: 0; }
.modal dt { color: var(--muted); font-size: 12px; }
.modal dd { margin: 0; word-break: break-word; }
.modal dd.pre { white-space: pre-wrap; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>

<section class="kpis">
  <div class="kpi">
    <div class="label">Responses</div>
    <div class="value">{{.Total}}</div>
  </div>
  <div class="kpi">
    <div class="label">Average Rating</div>
    <div class="value"><span class="stars">{{.AverageStars}}</span> {{.Average}}/5</div>
  </div>
  <div class="kpi">
    <div class="label">Preference Mix</div>
    <div class="value">{{range .Tags}}<span class="tag {{.Class}}">{{.Label}}: {{.Count}}</span>{{end}}</div>
  </div>
</section>

<section class="bars">
  {{range .Bars}}
  <div class="bar" title="{{.Count}} responses">
    <span class="stars">{{.Stars}}</span>
    <div class="track"><div class="fill" style="width:{{.Percent}}%"></div></div>
    <span class="pct">{{.Percent}}%</span>
  </div>
  {{end}}
</section>

<form class="filters" method="get" action="{{.Action}}">
  <label>Search
    <input type="text" name="q" value="{{.Search}}" placeholder="Email, campaign UID, subject, or comment">
  </label>
  <label>From
    <input type="date" name="start" value="{{.StartDate}}">
  </label>
  <label>To
    <input type="date" name="end" value="{{.EndDate}}">
  </label>
  <label>Rating
    <span>
      <select name="rmin">
        <option value="">Min</option>
        {{range .MinRatings}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}
      </select>
      <select name="rmax">
        <option value="">Max</option>
        {{range .MaxRatings}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}
      </select>
    </span>
  </label>
  <label>Preference
    <select name="pref">
      <option value="">Any</option>
      {{range .Preferences}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}
    </select>
  </label>
  <label>Sort
    <select name="sort">
      {{range .Sorts}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}
    </select>
  </label>
  <label>Per page
    <select name="limit">
      {{range .PageSizes}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}
    </select>
  </label>
  <button type="submit" class="btn primary">Apply</button>
  <a class="btn" href="{{.ResetURL}}">Reset</a>
  <button type="submit" class="btn" name="export" value="csv">Export CSV</button>
  <button type="submit" class="btn" name="export" value="xlsx">Export XLSX</button>
</form>

<table>
  <thead>
    <tr>
      <th>When</th>
      <th>Rating</th>
      <th>Preference</th>
      <th>Subject</th>
      <th>Email</th>
      <th>Campaign</th>
      <th>Subscriber</th>
      <th>Comments</th>
      <th>IP</th>
    </tr>
  </thead>
  <tbody>
  {{range .Rows}}
    <tr>
      <td>{{.When}}{{if .TZ}} <span class="muted">({{.TZ}})</span>{{end}}</td>
      <td class="stars">{{.Stars}}</td>
      <td><span class="tag {{.Preference}}">{{.PreferenceLabel}}</span></td>
      <td class="trunc" title="{{.Subject}}">{{.Subject}}</td>
      <td class="trunc" title="{{.Email}}">{{if .Email}}<a href="mailto:{{.Email}}">{{.Email}}</a>{{end}}</td>
      <td class="trunc" title="{{.CampaignUID}}">{{.CampaignUID}}</td>
      <td class="trunc" title="{{.SubscriberUID}}">{{.SubscriberUID}}</td>
      <td>{{if .HasComments}}{{.Snippet}} <button type="button" class="btn small js-detail" data-detail="{{.Detail}}">View</button>{{end}}</td>
      <td class="trunc" title="{{.IPAddress}}">{{.IPAddress}}</td>
    </tr>
  {{else}}
    <tr><td class="empty" colspan="9">No results for the selected filters.</td></tr>
  {{end}}
  </tbody>
</table>

<nav class="pagination">
  {{if .PrevURL}}<a class="page" href="{{.PrevURL}}">&laquo; Prev</a>{{else}}<span class="page disabled">&laquo; Prev</span>{{end}}
  {{range .Pages}}{{if .Gap}}<span class="gap">…</span>{{else}}<a class="page{{if .Active}} active{{end}}" href="{{.URL}}">{{.Number}}</a>{{end}}{{end}}
  {{if .NextURL}}<a class="page" href="{{.NextURL}}">Next &raquo;</a>{{else}}<span class="page disabled">Next &raquo;</span>{{end}}
</nav>

<footer class="muted">Internal dashboard. Protect this page behind authentication.</footer>

<div class="modal" id="detail-modal" role="dialog" aria-modal="true" aria-labelledby="detail-title">
  <div class="dialog">
    <div class="head">
      <h2 id="detail-title">Feedback details</h2>
      <button type="button" class="btn small" id="detail-close" aria-label="Close">✕</button>
    </div>
    <dl>
      <dt>When</dt><dd data-field="when"></dd>
      <dt>Rating</dt><dd data-field="rating" class="stars"></dd>
      <dt>Preference</dt><dd data-field="preference"></dd>
      <dt>Subject</dt><dd data-field="subject"></dd>
      <dt>Email</dt><dd data-field="email"></dd>
      <dt>Campaign UID</dt><dd data-field="campaign_uid"></dd>
      <dt>Subscriber UID</dt><dd data-field="subscriber_uid"></dd>
      <dt>Comments</dt><dd data-field="comments" class="pre"></dd>
      <dt>IP</dt><dd data-field="ip_address"></dd>
      <dt>Page URL</dt><dd data-field="page_url"></dd>
      <dt>Referrer</dt><dd data-field="referrer"></dd>
      <dt>User agent</dt><dd data-field="user_agent"></dd>
    </dl>
  </div>
</div>

<script>
(function () {
  var modal = document.getElementById("detail-modal");

  function renderStars(n) {
    n = Math.max(0, Math.min(5, parseInt(n, 10) || 0));
    return "★★★★★".slice(0, n) + "☆☆☆☆☆".slice(0, 5 - n);
  }

  function capitalize(s) {
    s = String(s || "");
    return s.charAt(0).toUpperCase() + s.slice(1);
  }

  function show(detail) {
    var values = {
      when: detail.when + (detail.tz ? " (" + detail.tz + ")" : ""),
      rating: renderStars(detail.rating),
      preference: capitalize(detail.preference),
      subject: detail.subject,
      email: detail.email,
      campaign_uid: detail.campaign_uid,
      subscriber_uid: detail.subscriber_uid,
      comments: detail.comments,
      ip_address: detail.ip_address,
      page_url: detail.page_url,
      referrer: detail.referrer,
      user_agent: detail.user_agent
    };
    var fields = modal.querySelectorAll("[data-field]");
    for (var i = 0; i < fields.length; i++) {
      var v = values[fields[i].getAttribute("data-field")];
      fields[i].textContent = v ? v : "—";
    }
    modal.classList.add("open");
  }

  function hide() { modal.classList.remove("open"); }

  document.addEventListener("click", function (e) {
    var btn = e.target.closest ? e.target.closest(".js-detail") : null;
    if (!btn) { return; }
    try {
      show(JSON.parse(btn.getAttribute("data-detail")));
    } catch (err) {
      show({});
    }
  });
  document.getElementById("detail-close").addEventListener("click", hide);
  modal.addEventListener("click", function (e) { if (e.target === modal) { hide(); } });
  document.addEventListener("keydown", function (e) { if (e.key === "Escape") { hide(); } });
})();
</script>
</body>
</html>
`

const errorTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; background: #f6f7fb; color: #1f2430; padding: 48px; }
.box { max-width: 520px; margin: 0 auto; background: #fff; border: 1px solid #e3e6ee; border-radius: 10px; padding: 24px; }
h1 { font-size: 20px; margin: 0 0 8px; }
</style>
</head>
<body>
<div class="box">
  <h1>{{.Title}}</h1>
  <p>{{.Message}}</p>
</div>
</body>
</html>
`
