package domain

// RouteEntry declares one client-facing path in the static route table.
// Roles is the explicit permitted-role set for the route; an empty set
// admits any authenticated user. The login path is the only unguarded entry.
type RouteEntry struct {
	Path    string
	View    string
	Roles   []string
	Public  bool
	Sidebar string // sidebar label; empty entries stay off the sidebar
}

// AllowsRole reports whether a session role may reach this route.
func (r RouteEntry) AllowsRole(role string) bool {
	if len(r.Roles) == 0 {
		return true
	}
	for _, allowed := range r.Roles {
		if allowed == role {
			return true
		}
	}
	return false
}

// Header is the shell's identity strip: who is signed in and how their
// account type should be displayed.
type Header struct {
	Username    string `json:"username"`
	AccountType string `json:"account_type"`
}

// SidebarItem is one navigation entry visible to the current role.
type SidebarItem struct {
	Path  string `json:"path"`
	Label string `json:"label"`
}

// Sidebar carries the navigation list plus its transient expanded state.
type Sidebar struct {
	Expanded bool          `json:"expanded"`
	Items    []SidebarItem `json:"items"`
}

// Footer is static shell chrome.
type Footer struct {
	Year    int    `json:"year"`
	Version string `json:"version"`
}

// Envelope is the rendered response for every view route: shell chrome
// around exactly one view, carrying either its data or a page-level error.
type Envelope struct {
	Header  Header  `json:"header"`
	Sidebar Sidebar `json:"sidebar"`
	Footer  Footer  `json:"footer"`
	View    string  `json:"view"`
	Data    any     `json:"data,omitempty"`
	Error   string  `json:"error,omitempty"`
}
