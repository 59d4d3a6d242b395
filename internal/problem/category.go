package problem

// Category is one practice topic.
type Category struct {
	ID   string
	Name string
	Icon string

	// Color is a hex accent used by the terminal UI.
	Color string
}

const (
	CategoryAddition    = "addition"
	CategorySubtraction = "subtraction"
	CategoryShapes      = "shapes"
	CategoryMoney       = "money"
	CategoryLogic       = "logic"
)

// App title and subtitle shown on the home screen.
const (
	AppTitle    = "小小数学家"
	AppSubtitle = "小学一年级同步辅导"
)

var catalog = []Category{
	{ID: CategoryAddition, Name: "20以内加法", Icon: "➕", Color: "#4ADE80"},
	{ID: CategorySubtraction, Name: "20以内减法", Icon: "➖", Color: "#FB923C"},
	{ID: CategoryShapes, Name: "认识图形", Icon: "📐", Color: "#60A5FA"},
	{ID: CategoryMoney, Name: "认识人民币", Icon: "💰", Color: "#FACC15"},
	{ID: CategoryLogic, Name: "逻辑推理", Icon: "💡", Color: "#C084FC"},
}

// Categories returns the catalog in display order. The slice is a copy.
func Categories() []Category {
	out := make([]Category, len(catalog))
	copy(out, catalog)
	return out
}

// LookupCategory returns the category with the given id.
func LookupCategory(id string) (Category, bool) {
	for _, c := range catalog {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}
