package render

import (
	"image/color"

	"github.com/swdee/go-pageseg/page"
)

var (
	// classColors is a list of colors used to paint detector instances by
	// class id
	classColors = []color.RGBA{
		{R: 255, G: 56, B: 56, A: 255},   // #FF3838
		{R: 255, G: 112, B: 31, A: 255},  // #FF701F
		{R: 255, G: 178, B: 29, A: 255},  // #FFB21D
		{R: 207, G: 210, B: 49, A: 255},  // #CFD231
		{R: 72, G: 249, B: 10, A: 255},   // #48F90A
		{R: 26, G: 147, B: 52, A: 255},   // #1A9334
		{R: 0, G: 212, B: 187, A: 255},   // #00D4BB
		{R: 0, G: 194, B: 255, A: 255},   // #00C2FF
		{R: 52, G: 69, B: 147, A: 255},   // #344593
		{R: 100, G: 115, B: 255, A: 255}, // #6473FF
		{R: 0, G: 24, B: 236, A: 255},    // #0018EC
		{R: 132, G: 56, B: 255, A: 255},  // #8438FF
		{R: 82, G: 0, B: 133, A: 255},    // #520085
		{R: 255, G: 149, B: 200, A: 255}, // #FF95C8
		{R: 255, G: 55, B: 199, A: 255},  // #FF37C7
		{R: 255, G: 157, B: 151, A: 255}, // #FF9D97
	}

	// categoryColors are the outline colors of regions by category
	categoryColors = map[page.Category]color.RGBA{
		page.CategoryText:        {R: 255, G: 0, B: 0, A: 255},     // #FF0000
		page.CategoryImage:       {R: 0, G: 128, B: 255, A: 255},   // #0080FF
		page.CategoryLineDrawing: {R: 0, G: 191, B: 255, A: 255},   // #00BFFF
		page.CategoryGraphic:     {R: 0, G: 255, B: 191, A: 255},   // #00FFBF
		page.CategoryTable:       {R: 191, G: 0, B: 255, A: 255},   // #BF00FF
		page.CategoryChart:       {R: 128, G: 128, B: 255, A: 255}, // #8080FF
		page.CategoryMap:         {R: 0, G: 255, B: 128, A: 255},   // #00FF80
		page.CategorySeparator:   {R: 255, G: 128, B: 0, A: 255},   // #FF8000
		page.CategoryMaths:       {R: 255, G: 0, B: 128, A: 255},   // #FF0080
		page.CategoryChem:        {R: 255, G: 0, B: 191, A: 255},   // #FF00BF
		page.CategoryMusic:       {R: 128, G: 0, B: 255, A: 255},   // #8000FF
		page.CategoryAdvert:      {R: 255, G: 191, B: 0, A: 255},   // #FFBF00
		page.CategoryNoise:       {R: 96, G: 96, B: 96, A: 255},    // #606060
		page.CategoryUnknown:     {R: 192, G: 192, B: 192, A: 255}, // #C0C0C0
		page.CategoryCustom:      {R: 210, G: 105, B: 30, A: 255},  // #D2691E
	}

	Black  = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Yellow = color.RGBA{R: 255, G: 255, B: 50, A: 255}
	Pink   = color.RGBA{R: 255, G: 0, B: 255, A: 255}

	// lineColor outlines text lines
	lineColor = color.RGBA{R: 26, G: 147, B: 52, A: 255}
	// borderColor outlines the page border
	borderColor = Yellow
)

// classColor returns the color for a detector class id
func classColor(class int) color.RGBA {

	if class < 0 {
		class = -class
	}

	return classColors[class%len(classColors)]
}

// categoryColor returns the outline color of regions of the category
func categoryColor(c page.Category) color.RGBA {

	if clr, ok := categoryColors[c]; ok {
		return clr
	}

	return Pink
}
