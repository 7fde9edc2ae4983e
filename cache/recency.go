package cache

// recencyList is an intrusive doubly linked list ordered by last access:
// front is the oldest element, back is the most recently updated one.
// All operations run in O(1) and assume the caller holds the cache lock.
type recencyList[K Key, V Cleanable] struct {
	head *element[K, V] // oldest
	tail *element[K, V] // newest
	n    int
}

func (l *recencyList[K, V]) front() *element[K, V] { return l.head }

func (l *recencyList[K, V]) len() int { return l.n }

// pushBack appends el as the newest element.
func (l *recencyList[K, V]) pushBack(el *element[K, V]) {
	el.next = nil
	el.prev = l.tail
	if l.tail != nil {
		l.tail.next = el
	} else {
		l.head = el
	}
	l.tail = el
	l.n++
}

// remove unlinks el from its current position.
func (l *recencyList[K, V]) remove(el *element[K, V]) {
	if el.prev != nil {
		el.prev.next = el.next
	} else {
		l.head = el.next
	}
	if el.next != nil {
		el.next.prev = el.prev
	} else {
		l.tail = el.prev
	}
	el.prev, el.next = nil, nil
	l.n--
}

// popFront removes and returns the oldest element, or nil when empty.
func (l *recencyList[K, V]) popFront() *element[K, V] {
	el := l.head
	if el != nil {
		l.remove(el)
	}
	return el
}
