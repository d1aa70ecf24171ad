package handler

import "github.com/schoolhub/portal/internal/core/domain"

// RouteTable is the static declarative list of every client-facing path.
// Constructed once; the router iterates it to register the guarded chain
// Guard -> RequireRoles -> view, and the shell iterates it to build each
// role's sidebar. The login path is the single public entry.
//
// Role sets are explicit per route. An entry with no roles admits any
// authenticated user; admins are included on every restricted route.
func RouteTable() []domain.RouteEntry {
	return []domain.RouteEntry{
		{Path: "/login", View: "login", Public: true},
		{Path: "/", View: "home"},

		{Path: "/studentDashboard", View: "studentDashboard", Roles: []string{domain.RoleStudent, domain.RoleAdmin}, Sidebar: "Student Dashboard"},
		{Path: "/parentDashboard", View: "parentDashboard", Roles: []string{domain.RoleParent, domain.RoleAdmin}, Sidebar: "Parent Dashboard"},
		{Path: "/teacherDashboard", View: "teacherDashboard", Roles: []string{domain.RoleTeacher, domain.RoleAdmin}, Sidebar: "Teacher Dashboard"},
		{Path: "/adminDashboard", View: "adminDashboard", Roles: []string{domain.RoleAdmin}, Sidebar: "Admin Dashboard"},

		{Path: "/help", View: "help", Sidebar: "Help"},
		{Path: "/settings", View: "settings", Sidebar: "Settings"},
		{Path: "/classes", View: "classes", Roles: []string{domain.RoleTeacher, domain.RoleAdmin}, Sidebar: "Classes"},
		{Path: "/subjects", View: "subjects", Roles: []string{domain.RoleTeacher, domain.RoleAdmin}, Sidebar: "Subjects"},
		{Path: "/attendance", View: "attendance", Roles: []string{domain.RoleTeacher, domain.RoleAdmin}, Sidebar: "Attendance"},
		{Path: "/timeTable", View: "timeTable", Sidebar: "Time Table"},
		{Path: "/studentPromotion", View: "studentPromotion", Roles: []string{domain.RoleAdmin}, Sidebar: "Student Promotion"},
		{Path: "/schoolFees", View: "schoolFees", Roles: []string{domain.RoleParent, domain.RoleAdmin}, Sidebar: "School Fees"},

		{Path: "/registerStudent", View: "registerStudent", Roles: []string{domain.RoleAdmin}, Sidebar: "Register Student"},
		{Path: "/registerTeacher", View: "registerTeacher", Roles: []string{domain.RoleAdmin}, Sidebar: "Register Teacher"},
		{Path: "/registerParent", View: "registerParent", Roles: []string{domain.RoleAdmin}, Sidebar: "Register Parent"},

		{Path: "/edit-student/:id", View: "editStudent", Roles: []string{domain.RoleTeacher, domain.RoleAdmin}},
		{Path: "/edit-parent/:id", View: "editParent", Roles: []string{domain.RoleAdmin}},
		{Path: "/edit-teacher/:id", View: "editTeacher", Roles: []string{domain.RoleAdmin}},
	}
}
