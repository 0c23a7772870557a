package web

// NavItem is one sidebar link.
type NavItem struct {
	Key    string
	Label  string
	Href   string
	Active bool
}

// Nav is a sidebar shell. The mobile open/closed toggle is CSS only.
type Nav struct {
	Brand  string
	Items  []NavItem
	Footer NavItem
}

// Sidebar keys.
const (
	navDashboard  = "dashboard"
	navAttendance = "attendance"
	navPastEvents = "past-events"
	navReports    = "reports"
	navRequest    = "request"
)

func adminNav(active string) Nav {
	return Nav{
		Brand: "Event Attendance",
		Items: markActive(active, []NavItem{
			{Key: navDashboard, Label: "Dashboard", Href: "/dashboard"},
			{Key: navAttendance, Label: "Attendance", Href: "/dashboard/attendance"},
			{Key: navPastEvents, Label: "Past Events", Href: "/dashboard/past-events"},
			{Key: navReports, Label: "Reports", Href: "/dashboard/reports"},
			{Key: navRequest, Label: "Request Event", Href: "/dashboard/request"},
		}),
		Footer: NavItem{Label: "Student View", Href: "/student-dashboard"},
	}
}

func studentNav(active string) Nav {
	return Nav{
		Brand: "Student Portal",
		Items: markActive(active, []NavItem{
			{Key: navDashboard, Label: "Dashboard", Href: "/student-dashboard"},
			{Key: navAttendance, Label: "Attendance", Href: "/student-dashboard/attendance"},
			{Key: navReports, Label: "Reports", Href: "/student-dashboard/reports"},
		}),
		Footer: NavItem{Label: "Log Out", Href: "/student-login"},
	}
}

func markActive(active string, items []NavItem) []NavItem {
	for i := range items {
		items[i].Active = items[i].Key == active
	}
	return items
}
