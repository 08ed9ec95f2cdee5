package collections_test

import (
	"fmt"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandb/dlist/internal/observability/wberrors"
	"github.com/wandb/dlist/pkg/collections"
)

// helloThereWorld builds the list used by the demonstration script.
func helloThereWorld(t *testing.T) *collections.DoublyLinkedList[string] {
	t.Helper()

	list := &collections.DoublyLinkedList[string]{}
	require.NoError(t, list.Insert(0, "Hello"))
	list.PushBack("There")
	list.PushBack("World")
	return list
}

func TestZeroValue_IsEmpty(t *testing.T) {
	list := &collections.DoublyLinkedList[int]{}

	assert.True(t, list.Empty())
	assert.Equal(t, 0, list.Len())
	assert.Equal(t, "<  >", list.String())
}

func TestPushes_IncreaseLength(t *testing.T) {
	list := &collections.DoublyLinkedList[int]{}

	list.PushBack(1)
	list.PushFront(0)
	list.PushBack(2)

	assert.Equal(t, 3, list.Len())
	assert.False(t, list.Empty())
	assert.Equal(t, []int{0, 1, 2}, list.ToSlice())
}

func TestLength_MatchesPushesMinusErasures(t *testing.T) {
	list := &collections.DoublyLinkedList[int]{}
	expected := 0

	for i := range 20 {
		if i%3 == 0 {
			list.PushFront(i)
		} else {
			list.PushBack(i)
		}
		expected++
	}
	for i := range 20 {
		if i%2 == 0 && list.Erase(i) {
			expected--
		}
	}
	assert.False(t, list.Erase(100))

	assert.Equal(t, expected, list.Len())
	assert.Len(t, list.ToSlice(), expected)
}

func TestString(t *testing.T) {
	assert.Equal(t, "< Hello, There, World >", helloThereWorld(t).String())
	assert.Equal(t, "< 7 >", collections.NewDoublyLinkedList(7).String())
}

func TestString_UsesStringer(t *testing.T) {
	list := collections.NewDoublyLinkedList(stringerValue{1}, stringerValue{2})

	assert.Equal(t, "< #1, #2 >", list.String())
	assert.Equal(t, "< #1, #2 >", fmt.Sprint(list))
}

type stringerValue struct{ n int }

func (v stringerValue) String() string { return fmt.Sprintf("#%d", v.n) }

func TestInsert_EveryValidIndex(t *testing.T) {
	for index := 0; index <= 3; index++ {
		t.Run(fmt.Sprintf("index %d", index), func(t *testing.T) {
			list := collections.NewDoublyLinkedList("a", "b", "c")

			require.NoError(t, list.Insert(index, "x"))

			value, err := list.At(index)
			require.NoError(t, err)
			assert.Equal(t, "x", value)
			assert.Equal(t, 4, list.Len())
		})
	}
}

func TestInsert_Middle(t *testing.T) {
	list := collections.NewDoublyLinkedList(1, 2, 4, 5)

	require.NoError(t, list.Insert(2, 3))

	assert.Equal(t, []int{1, 2, 3, 4, 5}, list.ToSlice())
	assertLinksConsistent(t, list)
}

func TestInsert_IntoEmptyList(t *testing.T) {
	list := &collections.DoublyLinkedList[string]{}

	require.NoError(t, list.Insert(0, "only"))

	assert.Equal(t, 1, list.Len())
	front, _ := list.Front()
	back, _ := list.Back()
	assert.Equal(t, "only", front)
	assert.Equal(t, "only", back)
}

func TestInsert_OutOfRange_NoMutation(t *testing.T) {
	for _, index := range []int{-1, 4, 100} {
		t.Run(fmt.Sprintf("index %d", index), func(t *testing.T) {
			list := collections.NewDoublyLinkedList("a", "b", "c")

			err := list.Insert(index, "x")

			assert.ErrorIs(t, err, collections.ErrIndexOutOfRange)
			assert.Equal(t, []string{"a", "b", "c"}, list.ToSlice())
		})
	}
}

func TestInsert_OutOfRangeOnEmptyList(t *testing.T) {
	list := &collections.DoublyLinkedList[string]{}

	err := list.Insert(1, "x")

	assert.ErrorIs(t, err, collections.ErrIndexOutOfRange)
	assert.True(t, list.Empty())
}

func TestOutOfRangeError_Enriched(t *testing.T) {
	list := collections.NewDoublyLinkedList(1, 2)

	err := list.Insert(5, 0)

	assert.Equal(t,
		"collections: insert: index 5, length 2: index out of range",
		err.Error())
	assert.Equal(t,
		map[string]string{"index": "5", "len": "2"},
		wberrors.Tags(err))
	assert.True(t, wberrors.SkipSentry(err))
}

func TestErase_RemovesOnlyFirstMatch(t *testing.T) {
	list := collections.NewDoublyLinkedList("a", "b", "a", "c", "a")

	assert.True(t, list.Erase("a"))
	assert.Equal(t, []string{"b", "a", "c", "a"}, list.ToSlice())

	assert.True(t, list.Erase("a"))
	assert.Equal(t, []string{"b", "c", "a"}, list.ToSlice())
	assertLinksConsistent(t, list)
}

func TestErase_Missing_Noop(t *testing.T) {
	list := helloThereWorld(t)

	assert.False(t, list.Erase("Nonexistent"))

	assert.Equal(t, "< Hello, There, World >", list.String())
}

func TestErase_FirstAndLast(t *testing.T) {
	list := collections.NewDoublyLinkedList(1, 2, 3)

	list.Erase(1)
	list.Erase(3)

	front, err := list.Front()
	require.NoError(t, err)
	back, err := list.Back()
	require.NoError(t, err)
	assert.Equal(t, 2, front)
	assert.Equal(t, 2, back)
	assertLinksConsistent(t, list)
}

func TestErase_OnlyItem_EmptiesList(t *testing.T) {
	list := collections.NewDoublyLinkedList(1)

	list.Erase(1)
	list.PushBack(2)

	assert.Equal(t, []int{2}, list.ToSlice())
	assertLinksConsistent(t, list)
}

func TestEraseAt(t *testing.T) {
	list := collections.NewDoublyLinkedList("a", "b", "c", "d")

	value, err := list.EraseAt(2)

	require.NoError(t, err)
	assert.Equal(t, "c", value)
	assert.Equal(t, []string{"a", "b", "d"}, list.ToSlice())
	assertLinksConsistent(t, list)
}

func TestEraseAt_RepeatedNeverRemovesSameItemTwice(t *testing.T) {
	list := collections.NewDoublyLinkedList("a", "b", "c")

	first, err := list.EraseAt(1)
	require.NoError(t, err)
	second, err := list.EraseAt(1)
	require.NoError(t, err)
	_, err = list.EraseAt(1)

	assert.Equal(t, "b", first)
	assert.Equal(t, "c", second)
	assert.ErrorIs(t, err, collections.ErrIndexOutOfRange)
	assert.Equal(t, []string{"a"}, list.ToSlice())
}

func TestEraseAt_OutOfRange_NoMutation(t *testing.T) {
	for _, index := range []int{-1, 3} {
		t.Run(fmt.Sprintf("index %d", index), func(t *testing.T) {
			list := collections.NewDoublyLinkedList("a", "b", "c")

			_, err := list.EraseAt(index)

			assert.ErrorIs(t, err, collections.ErrIndexOutOfRange)
			assert.Equal(t, []string{"a", "b", "c"}, list.ToSlice())
		})
	}
}

func TestFind(t *testing.T) {
	list := helloThereWorld(t)

	assert.True(t, list.Find("Hello"))
	assert.True(t, list.Find("Hello"))
	assert.False(t, list.Find("Nonexistent"))
	assert.Equal(t, "< Hello, There, World >", list.String())
}

func TestAt(t *testing.T) {
	list := helloThereWorld(t)

	first, err := list.At(0)
	require.NoError(t, err)
	last, err := list.At(2)
	require.NoError(t, err)
	_, err = list.At(3)

	assert.Equal(t, "Hello", first)
	assert.Equal(t, "World", last)
	assert.ErrorIs(t, err, collections.ErrIndexOutOfRange)
}

func TestAt_WalksFromEitherEnd(t *testing.T) {
	list := &collections.DoublyLinkedList[int]{}
	for i := range 11 {
		list.PushBack(i)
	}

	for i := range 11 {
		value, err := list.At(i)
		require.NoError(t, err)
		assert.Equal(t, i, value)
	}
}

func TestFrontBack_EmptyList(t *testing.T) {
	list := &collections.DoublyLinkedList[string]{}

	_, frontErr := list.Front()
	_, backErr := list.Back()

	assert.ErrorIs(t, frontErr, collections.ErrEmptyList)
	assert.ErrorIs(t, backErr, collections.ErrEmptyList)
	assert.True(t, wberrors.SkipSentry(frontErr))
	assert.True(t, wberrors.SkipSentry(backErr))
}

func TestClone_IsIndependent(t *testing.T) {
	original := helloThereWorld(t)
	clone := original.Clone()

	clone.Erase("There")
	clone.PushFront("Wow!")
	require.NoError(t, clone.Insert(1, "Super..."))

	assert.Equal(t, "< Wow!, Super..., Hello, World >", clone.String())
	assert.Equal(t, "< Hello, There, World >", original.String())
	assert.Equal(t, 3, original.Len())
	assertLinksConsistent(t, clone)
	assertLinksConsistent(t, original)
}

func TestClone_Empty(t *testing.T) {
	clone := (&collections.DoublyLinkedList[int]{}).Clone()

	assert.True(t, clone.Empty())
	clone.PushBack(1)
	assert.Equal(t, 1, clone.Len())
}

func TestAssign_ReplacesContents(t *testing.T) {
	target := collections.NewDoublyLinkedList("old", "stuff")
	source := helloThereWorld(t)

	target.Assign(source)
	source.PushBack("!")

	assert.Equal(t, "< Hello, There, World >", target.String())
	assert.Equal(t, 4, source.Len())
}

func TestAssign_Self_Noop(t *testing.T) {
	list := helloThereWorld(t)

	list.Assign(list)

	assert.Equal(t, "< Hello, There, World >", list.String())
	assert.Equal(t, 3, list.Len())
}

func TestClear(t *testing.T) {
	list := helloThereWorld(t)

	list.Clear()

	assert.True(t, list.Empty())
	assert.Equal(t, "<  >", list.String())
	list.PushFront("again")
	assert.Equal(t, "< again >", list.String())
}

func TestIter(t *testing.T) {
	list := collections.NewDoublyLinkedList("one", "two", "three")

	next, stop := iter.Pull2(list.Iter())
	defer stop()

	i, x, ok := next()
	assert.Equal(t, 0, i)
	assert.Equal(t, "one", x)
	assert.True(t, ok)
	i, x, ok = next()
	assert.Equal(t, 1, i)
	assert.Equal(t, "two", x)
	assert.True(t, ok)
	i, x, ok = next()
	assert.Equal(t, 2, i)
	assert.Equal(t, "three", x)
	assert.True(t, ok)
	_, _, ok = next()
	assert.False(t, ok)
}

func TestIter_StopsOnBreak(t *testing.T) {
	list := collections.NewDoublyLinkedList("a", "b", "c")

	for _, x := range list.Iter() {
		if x == "b" {
			break
		}

		assert.NotEqual(t, "c", x)
	}
}

// assertLinksConsistent checks that At, Front and Back agree with a
// forward walk of the list.
func assertLinksConsistent[T comparable](
	t *testing.T,
	list *collections.DoublyLinkedList[T],
) {
	t.Helper()

	forward := list.ToSlice()
	require.Len(t, forward, list.Len())

	for i, expected := range forward {
		actual, err := list.At(i)
		require.NoError(t, err)
		assert.Equal(t, expected, actual)
	}

	if list.Empty() {
		return
	}
	front, err := list.Front()
	require.NoError(t, err)
	back, err := list.Back()
	require.NoError(t, err)
	assert.Equal(t, forward[0], front)
	assert.Equal(t, forward[len(forward)-1], back)
}
