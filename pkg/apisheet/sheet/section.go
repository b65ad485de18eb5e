package sheet

// Sections is the LIFO stack of open sections of one sheet.
type Sections struct {
	sheet Sheet
	open  []*Section
}

// NewSections returns an empty section stack writing group effects to s.
func NewSections(s Sheet) *Sections {
	return &Sections{sheet: s}
}

// Depth returns the number of currently open sections.
func (st *Sections) Depth() int {
	return len(st.open)
}

// Open starts a section at the cursor's current row. The returned section
// must be closed, normally with defer, so that it is released on every exit
// path.
func (st *Sections) Open(cur *Cursor) *Section {
	s := &Section{
		stack: st,
		cur:   cur,
		start: cur.Current(),
		level: len(st.open) + 1,
	}
	st.open = append(st.open, s)
	st.sheet.OpenSection(s.start, s.level)
	return s
}

// Section brackets the rows written between Open and Close.
type Section struct {
	stack  *Sections
	cur    *Cursor
	start  int
	end    int
	level  int
	closed bool
}

// Start returns the first row of the section.
func (s *Section) Start() int {
	return s.start
}

// Level returns the nesting level (1 = outermost).
func (s *Section) Level() int {
	return s.level
}

// Close ends the section at the cursor's current row, spanning
// [start, cursor). Closing twice is a no-op. Inner sections that are still
// open are closed first, so the sink always sees LIFO order.
func (s *Section) Close() {
	if s.closed {
		return
	}
	st := s.stack
	for len(st.open) > 0 {
		top := st.open[len(st.open)-1]
		st.open = st.open[:len(st.open)-1]
		top.closed = true
		top.end = top.cur.Current()
		st.sheet.CloseSection(top.start, top.end, top.level)
		if top == s {
			return
		}
	}
}

// End returns the exclusive end row recorded at Close (0 while open).
func (s *Section) End() int {
	return s.end
}
