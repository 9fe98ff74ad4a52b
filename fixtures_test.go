package goshape_test

import (
	"math"
	"time"
)

type Person struct {
	Name string
	Age  int
	Tags []string
}

type Nicknamed struct {
	Name     string
	Nickname string
}

type Color int

const (
	Red Color = iota
	Green
	Blue
)

func (Color) EnumMembers() []any { return []any{Red, Green, Blue} }

func (c Color) String() string { return [...]string{"Red", "Green", "Blue"}[c] }

type Suit int

func (Suit) EnumMembers() []any { return []any{Suit(0), Suit(1), Suit(2), Suit(3)} }

type Palette struct {
	Primary Color
	Others  []Color
}

type Event struct {
	Title    string        `json:"title"`
	At       time.Time     `json:"at"`
	Length   time.Duration `json:"length"`
	Score    float64       `json:"score"`
	Done     bool          `json:"done"`
	Attendee *Person       `json:"attendee"`
	Internal string        `json:"-"`
	private  int
}

type Node struct {
	Value    int
	Children []Node
}

type Linked struct {
	Next *Linked
}

type Celsius float64

type WithMap struct {
	M map[string]int
}

type Figure interface {
	Area() float64
}

type Square struct{ Side float64 }

func (s Square) Area() float64 { return s.Side * s.Side }

type Drawing struct {
	Figures []Figure
}

type Holder struct {
	Figure Figure
}

type Defaults struct {
	Name  string
	Level int
}

func (d *Defaults) SetToDefault() {
	d.Name = "unnamed"
	d.Level = 3
}

type Pair struct {
	Values [2]int
}

type PairSlice struct {
	Values []int
}

type Wide struct{ B int }

type Narrow struct{ B int8 }

type Unsigned struct{ B uint64 }

type StringAge struct {
	Name string
	Age  string
}

type inner struct{ X int }

type Outer struct {
	*inner
}

type Clash struct {
	A string `json:"key"`
	B string `json:"key"`
}

type Turkish struct {
	Dotless string `json:"ı"`
	Dotted  string `json:"i"`
}

const bigUint = uint64(math.MaxInt64) + 1
