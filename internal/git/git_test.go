package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const diff = `diff --git a/src/Order.cs b/src/Order.cs
index 3b18e51..a9c4f2e 100644
--- a/src/Order.cs
+++ b/src/Order.cs
@@ -3,0 +4,2 @@ class Order
+    void Ship() { }
+    void Bill() { }
@@ -10 +12 @@ class Order
-        if (x) y();
+        if (x) { y(); }
@@ -20,3 +21,0 @@ class Order
diff --git a/Old.cs b/Old.cs
deleted file mode 100644
--- a/Old.cs
+++ /dev/null
@@ -1,2 +0,0 @@
-class Old { }
-
diff --git a/New.cs b/New.cs
new file mode 100644
--- /dev/null
+++ b/New.cs
@@ -0,0 +1,3 @@
+class New
+{
+}
`

func TestParseDiff(t *testing.T) {
	changes, err := parseDiff([]byte(diff))
	require.NoError(t, err)

	require.Len(t, changes, 2)
	assert.Equal(t, ChangedFile{Path: "src/Order.cs", ChangedLines: []int{4, 5, 12}}, changes[0])
	assert.Equal(t, ChangedFile{Path: "New.cs", ChangedLines: []int{1, 2, 3}}, changes[1])
}

func TestParseDiff_Empty(t *testing.T) {
	changes, err := parseDiff(nil)
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestChangedFile_Contains(t *testing.T) {
	f := ChangedFile{ChangedLines: []int{4, 5, 12}}

	assert.True(t, f.Contains(5, 5))
	assert.True(t, f.Contains(10, 20))
	assert.False(t, f.Contains(6, 11))
}
