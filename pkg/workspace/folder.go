package workspace

// Folder is an ordered container of documents and folders. Item order is
// display and compile order.
type Folder struct {
	ID       string
	Name     string
	Items    []Item
	Created  Timestamp
	Modified Timestamp
}

// NewFolder returns an empty folder.
func NewFolder(name string) *Folder {
	now := Now()
	return &Folder{
		ID:       newID(),
		Name:     name,
		Created:  now,
		Modified: now,
	}
}

func (f *Folder) ItemID() string      { return f.ID }
func (f *Folder) ItemName() string    { return f.Name }
func (f *Folder) DisplayName() string { return f.Name }
func (f *Folder) isItem()             {}

// IndexOf returns the position of item among the folder's direct children,
// or -1.
func (f *Folder) IndexOf(item Item) int {
	for i, it := range f.Items {
		if it == item {
			return i
		}
	}
	return -1
}

// Contains reports whether item is anywhere below f.
func (f *Folder) Contains(item Item) bool {
	for _, it := range f.Items {
		if it == item {
			return true
		}
		if sub, ok := it.(*Folder); ok && sub.Contains(item) {
			return true
		}
	}
	return false
}

// WordCount totals the words of every document below f.
func (f *Folder) WordCount() int {
	total := 0
	for _, it := range f.Items {
		switch v := it.(type) {
		case *Document:
			total += v.WordCount()
		case *Folder:
			total += v.WordCount()
		}
	}
	return total
}

// DocumentCount counts the documents below f.
func (f *Folder) DocumentCount() int {
	n := 0
	for _, it := range f.Items {
		switch v := it.(type) {
		case *Document:
			n++
		case *Folder:
			n += v.DocumentCount()
		}
	}
	return n
}

func (f *Folder) remove(i int) Item {
	item := f.Items[i]
	f.Items = append(f.Items[:i:i], f.Items[i+1:]...)
	return item
}

func (f *Folder) insert(item Item, index int) {
	if index < 0 || index > len(f.Items) {
		index = len(f.Items)
	}
	f.Items = append(f.Items, nil)
	copy(f.Items[index+1:], f.Items[index:])
	f.Items[index] = item
}
