package style

import "github.com/goliatone/go-style/layering"

// Value types for property slots. Parsing and validation of these values
// belongs to the consumers that render them; the style state stores them as
// declared.
type (
	Color               string
	Length              string
	PercentLength       string
	Visibility          string
	HorizontalAlignment string
	VerticalAlignment   string
	BackgroundRepeat    string
	FontStyle           string
	FontWeight          string
	TextAlignment       string
	TextDecoration      string
	TextTransform       string
	WhiteSpace          string
	StatusBarStyle      string
	FlexDirection       string
	FlexWrap            string
	JustifyContent      string
	AlignItems          string
	AlignContent        string
	AlignSelf           string
)

// Properties is the flat set of typed property slots of a style. A nil slot
// is unset. Slots are independent of the variable table.
type Properties struct {
	Rotate     *float64 `json:"rotate,omitempty"`
	ScaleX     *float64 `json:"scale-x,omitempty"`
	ScaleY     *float64 `json:"scale-y,omitempty"`
	TranslateX *float64 `json:"translate-x,omitempty"`
	TranslateY *float64 `json:"translate-y,omitempty"`

	ClipPath         *string `json:"clip-path,omitempty"`
	Color            *Color  `json:"color,omitempty"`
	TintColor        *Color  `json:"tint-color,omitempty"`
	PlaceholderColor *Color  `json:"placeholder-color,omitempty"`

	Background         *string           `json:"background,omitempty"`
	BackgroundColor    *Color            `json:"background-color,omitempty"`
	BackgroundImage    *string           `json:"background-image,omitempty"`
	BackgroundRepeat   *BackgroundRepeat `json:"background-repeat,omitempty" enum:"repeat,repeat-x,repeat-y,no-repeat"`
	BackgroundSize     *string           `json:"background-size,omitempty"`
	BackgroundPosition *string           `json:"background-position,omitempty"`

	BorderColor             *string `json:"border-color,omitempty"`
	BorderTopColor          *Color  `json:"border-top-color,omitempty"`
	BorderRightColor        *Color  `json:"border-right-color,omitempty"`
	BorderBottomColor       *Color  `json:"border-bottom-color,omitempty"`
	BorderLeftColor         *Color  `json:"border-left-color,omitempty"`
	BorderWidth             *string `json:"border-width,omitempty"`
	BorderTopWidth          *Length `json:"border-top-width,omitempty"`
	BorderRightWidth        *Length `json:"border-right-width,omitempty"`
	BorderBottomWidth       *Length `json:"border-bottom-width,omitempty"`
	BorderLeftWidth         *Length `json:"border-left-width,omitempty"`
	BorderRadius            *string `json:"border-radius,omitempty"`
	BorderTopLeftRadius     *Length `json:"border-top-left-radius,omitempty"`
	BorderTopRightRadius    *Length `json:"border-top-right-radius,omitempty"`
	BorderBottomRightRadius *Length `json:"border-bottom-right-radius,omitempty"`
	BorderBottomLeftRadius  *Length `json:"border-bottom-left-radius,omitempty"`

	FontSize   *float64    `json:"font-size,omitempty"`
	FontFamily *string     `json:"font-family,omitempty"`
	FontStyle  *FontStyle  `json:"font-style,omitempty" enum:"normal,italic"`
	FontWeight *FontWeight `json:"font-weight,omitempty"`
	Font       *string     `json:"font,omitempty"`

	ZIndex     *int        `json:"z-index,omitempty"`
	Opacity    *float64    `json:"opacity,omitempty"`
	Visibility *Visibility `json:"visibility,omitempty" enum:"visible,hidden,collapse"`

	LetterSpacing  *float64        `json:"letter-spacing,omitempty"`
	LineHeight     *float64        `json:"line-height,omitempty"`
	TextAlignment  *TextAlignment  `json:"text-align,omitempty" enum:"initial,left,center,right"`
	TextDecoration *TextDecoration `json:"text-decoration,omitempty" enum:"none,underline,line-through,underline line-through"`
	TextTransform  *TextTransform  `json:"text-transform,omitempty" enum:"initial,none,capitalize,uppercase,lowercase"`
	WhiteSpace     *WhiteSpace     `json:"white-space,omitempty" enum:"initial,normal,nowrap"`

	MinWidth            *Length              `json:"min-width,omitempty"`
	MinHeight           *Length              `json:"min-height,omitempty"`
	Width               *PercentLength       `json:"width,omitempty"`
	Height              *PercentLength       `json:"height,omitempty"`
	Margin              *string              `json:"margin,omitempty"`
	MarginLeft          *PercentLength       `json:"margin-left,omitempty"`
	MarginTop           *PercentLength       `json:"margin-top,omitempty"`
	MarginRight         *PercentLength       `json:"margin-right,omitempty"`
	MarginBottom        *PercentLength       `json:"margin-bottom,omitempty"`
	Padding             *string              `json:"padding,omitempty"`
	PaddingLeft         *Length              `json:"padding-left,omitempty"`
	PaddingTop          *Length              `json:"padding-top,omitempty"`
	PaddingRight        *Length              `json:"padding-right,omitempty"`
	PaddingBottom       *Length              `json:"padding-bottom,omitempty"`
	HorizontalAlignment *HorizontalAlignment `json:"horizontal-align,omitempty" enum:"left,center,right,stretch"`
	VerticalAlignment   *VerticalAlignment   `json:"vertical-align,omitempty" enum:"top,middle,bottom,stretch"`

	TabTextFontSize       *float64 `json:"tab-text-font-size,omitempty"`
	TabTextColor          *Color   `json:"tab-text-color,omitempty"`
	TabBackgroundColor    *Color   `json:"tab-background-color,omitempty"`
	SelectedTabTextColor  *Color   `json:"selected-tab-text-color,omitempty"`
	TabHighlightColor     *Color   `json:"tab-highlight-color,omitempty"`
	SeparatorColor        *Color   `json:"separator-color,omitempty"`
	SelectedBackground    *Color   `json:"selected-background-color,omitempty"`
	StatusBarStyle        *StatusBarStyle `json:"status-bar-style,omitempty" enum:"light,dark"`
	StatusBarBackground   *Color   `json:"status-bar-background,omitempty"`

	FlexDirection  *FlexDirection  `json:"flex-direction,omitempty" enum:"row,row-reverse,column,column-reverse"`
	FlexWrap       *FlexWrap       `json:"flex-wrap,omitempty" enum:"nowrap,wrap,wrap-reverse"`
	JustifyContent *JustifyContent `json:"justify-content,omitempty" enum:"flex-start,flex-end,center,space-between,space-around"`
	AlignItems     *AlignItems     `json:"align-items,omitempty" enum:"flex-start,flex-end,center,baseline,stretch"`
	AlignContent   *AlignContent   `json:"align-content,omitempty" enum:"flex-start,flex-end,center,space-between,space-around,stretch"`
	Order          *int            `json:"order,omitempty"`
	FlexGrow       *float64        `json:"flex-grow,omitempty"`
	FlexShrink     *float64        `json:"flex-shrink,omitempty"`
	FlexWrapBefore *bool           `json:"flex-wrap-before,omitempty"`
	AlignSelf      *AlignSelf      `json:"align-self,omitempty" enum:"auto,flex-start,flex-end,center,baseline,stretch"`
}

// WithDefaults returns a copy of p whose unset slots are filled from
// defaults.
func (p Properties) WithDefaults(defaults Properties) Properties {
	return layering.MergeLayers(p, defaults)
}

// Ptr returns a pointer to v, for assigning property slots directly.
func Ptr[T any](v T) *T {
	return &v
}
