// Package navigation holds the static sidebar menus for each marketplace role.
// The data is built once at package load and handed out as copies.
package navigation

// Icon is a symbolic icon key. The client resolves it to an actual glyph.
type Icon string

const (
	IconLayoutDashboard Icon = "layout-dashboard"
	IconShoppingCart    Icon = "shopping-cart"
	IconShoppingBag     Icon = "shopping-bag"
	IconUser            Icon = "user"
	IconUsers           Icon = "users"
	IconSettings        Icon = "settings"
	IconBarChart        Icon = "bar-chart-4"
	IconShield          Icon = "shield"
	IconListOrdered     Icon = "list-ordered"
	IconTruck           Icon = "truck"
)

// NavItem is a single sidebar link.
type NavItem struct {
	Label       string `json:"label"`
	Path        string `json:"path"`
	Icon        Icon   `json:"icon"`
	Description string `json:"description"`
	Highlight   bool   `json:"highlight,omitempty"`
}

// MenuSection is a titled group of sidebar links.
type MenuSection struct {
	Title string    `json:"title"`
	Items []NavItem `json:"items"`
}

var buyerMenuSections = []MenuSection{
	{
		Title: "General",
		Items: []NavItem{
			{Label: "Dashboard", Path: "/dashboard", Icon: IconLayoutDashboard, Description: "Overview of your account"},
			{Label: "Marketplace", Path: "/marketplace", Icon: IconShoppingBag, Description: "Browse available items"},
		},
	},
	{
		Title: "Account",
		Items: []NavItem{
			{Label: "Profile", Path: "/profile", Icon: IconUser, Description: "Manage your account details"},
			{Label: "Cart", Path: "/cart", Icon: IconShoppingCart, Description: "View your shopping cart", Highlight: true},
			{Label: "My Orders", Path: "/orders", Icon: IconTruck, Description: "Track your orders"},
			{Label: "Settings", Path: "/settings", Icon: IconSettings, Description: "Change your preferences"},
		},
	},
}

var sellerMenuSections = []MenuSection{
	{
		Title: "Seller Portal",
		Items: []NavItem{
			{Label: "Seller Dashboard", Path: "/seller/dashboard", Icon: IconLayoutDashboard, Description: "Seller overview"},
			{Label: "Products", Path: "/seller/products", Icon: IconShoppingBag, Description: "Manage your items"},
			{Label: "Orders Received", Path: "/seller/orders", Icon: IconListOrdered, Description: "Manage customer orders"},
			{Label: "Analytics", Path: "/seller/analytics", Icon: IconBarChart, Description: "View sales performance"},
		},
	},
	{
		Title: "Account",
		Items: []NavItem{
			{Label: "Profile", Path: "/seller/profile", Icon: IconUser, Description: "Manage seller profile"},
		},
	},
}

var adminMenuItems = []NavItem{
	{Label: "Admin Panel", Path: "/admin/panel", Icon: IconShield, Description: "Access admin controls"},
	{Label: "User Management", Path: "/admin/users", Icon: IconUsers, Description: "Manage user accounts"},
}

// BuyerMenuSections returns the buyer sidebar.
func BuyerMenuSections() []MenuSection {
	return cloneSections(buyerMenuSections)
}

// SellerMenuSections returns the seller sidebar.
func SellerMenuSections() []MenuSection {
	return cloneSections(sellerMenuSections)
}

// AdminMenuItems returns the admin sidebar entries.
func AdminMenuItems() []NavItem {
	return append([]NavItem(nil), adminMenuItems...)
}

func cloneSections(in []MenuSection) []MenuSection {
	out := make([]MenuSection, len(in))
	for i, s := range in {
		out[i] = MenuSection{Title: s.Title, Items: append([]NavItem(nil), s.Items...)}
	}
	return out
}
