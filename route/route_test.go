package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshcores/corenet/crypto"
)

func testKey(t *testing.T, seedByte byte) (crypto.Key, crypto.CryptDE) {
	t.Helper()
	var seed [32]byte
	for i := range seed {
		seed[i] = seedByte
	}
	cryptde, err := crypto.NewRealCryptDEFromSeed(seed)
	require.NoError(t, err)
	return cryptde.PublicKey(), cryptde
}

func TestNewRouteSegmentRejectsShortSegments(t *testing.T) {
	_, err := NewRouteSegment([]crypto.Key{crypto.Key("a")}, ComponentHopper)
	assert.Error(t, err)
}

func TestRouteSingleSegmentShiftsToTermination(t *testing.T) {
	keyA, deA := testKey(t, 1)
	keyB, deB := testKey(t, 2)
	keyC, deC := testKey(t, 3)

	seg, err := NewRouteSegment([]crypto.Key{keyA, keyB, keyC}, ComponentNeighborhood)
	require.NoError(t, err)

	rt, err := NewRoute([]RouteSegment{seg}, deA)
	require.NoError(t, err)
	require.Len(t, rt.Hops, 3)

	nextKey, _, rt, err := rt.Shift(deA)
	require.NoError(t, err)
	assert.True(t, nextKey.Equal(keyB))
	assert.False(t, rt.IsTerminal())

	nextKey, _, rt, err = rt.Shift(deB)
	require.NoError(t, err)
	assert.True(t, nextKey.Equal(keyC))
	assert.False(t, rt.IsTerminal())

	nextKey, component, rt, err := rt.Shift(deC)
	require.NoError(t, err)
	assert.True(t, nextKey.Empty())
	assert.Equal(t, ComponentNeighborhood, component)
	assert.True(t, rt.IsTerminal())
}

func TestRouteMultiSegmentSwitchesComponentAtBoundary(t *testing.T) {
	keyA, deA := testKey(t, 11)
	keyB, _ := testKey(t, 12)
	keyC, deC := testKey(t, 13)

	seg1, err := NewRouteSegment([]crypto.Key{keyA, keyB}, ComponentHopper)
	require.NoError(t, err)
	seg2, err := NewRouteSegment([]crypto.Key{keyB, keyC}, ComponentProxyServer)
	require.NoError(t, err)

	rt, err := NewRoute([]RouteSegment{seg1, seg2}, deA)
	require.NoError(t, err)
	require.Len(t, rt.Hops, 3)

	_, componentAtA, rt, err := rt.Shift(deA)
	require.NoError(t, err)
	assert.Equal(t, ComponentHopper, componentAtA, "the boundary key still belongs to the first segment until reached")

	// The boundary hop (keyB) was encoded with the second segment's
	// component, since it is the shared relay that switches context.
	bKeyCryptde, err := crypto.NewRealCryptDEFromSeed(seedFor(12))
	require.NoError(t, err)
	_, componentAtB, rt, err := rt.Shift(bKeyCryptde)
	require.NoError(t, err)
	assert.Equal(t, ComponentProxyServer, componentAtB)

	nextKey, _, rt, err := rt.Shift(deC)
	require.NoError(t, err)
	assert.True(t, nextKey.Empty())
	assert.True(t, rt.IsTerminal())
}

func TestNewRouteRejectsNonChainingSegments(t *testing.T) {
	keyA, deA := testKey(t, 21)
	keyB, _ := testKey(t, 22)
	keyC, _ := testKey(t, 23)
	keyD, _ := testKey(t, 24)

	seg1, err := NewRouteSegment([]crypto.Key{keyA, keyB}, ComponentHopper)
	require.NoError(t, err)
	seg2, err := NewRouteSegment([]crypto.Key{keyC, keyD}, ComponentHopper)
	require.NoError(t, err)

	_, err = NewRoute([]RouteSegment{seg1, seg2}, deA)
	assert.Error(t, err)
}

func seedFor(b byte) [32]byte {
	var seed [32]byte
	for i := range seed {
		seed[i] = b
	}
	return seed
}
