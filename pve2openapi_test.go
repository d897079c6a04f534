package pve2openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pvetools/pve2openapi/internal/config"
)

const fixture = `// Generated API viewer data.
const apiSchema = [
   {
      "text" : "nodes",
      "info" : {
         "GET" : {
            "name" : "index",
            "description" : "Cluster node index.",
            "returns" : {
               "type" : "array",
               "items" : { "type" : "object" }
            }
         }
      },
      "children" : [
         {
            "text" : "{node}",
            "children" : [
               {
                  "text" : "qemu",
                  "info" : {
                     "GET" : {
                        "name" : "vmlist",
                        "description" : "Virtual machine index (per node).",
                        "parameters" : {
                           "properties" : {
                              "full" : {
                                 "type" : "boolean",
                                 "description" : "Determine the full status of active VMs.",
                                 "optional" : 1
                              }
                           }
                        }
                     },
                     "POST" : {
                        "name" : "create_vm",
                        "description" : "Create or restore a virtual machine.",
                        "parameters" : {
                           "properties" : {
                              "name" : { "type" : "string" },
                              "vmid" : {
                                 "type" : "integer",
                                 "optional" : 1,
                                 "minimum" : 100
                              }
                           }
                        },
                        "permissions" : {
                           "description" : "Requires VM.Allocate on /vms."
                        },
                        "returns" : { "type" : "string" }
                     }
                  }
               }
            ]
         }
      ]
   },
   {
      "text" : "version",
      "info" : {
         "GET" : {
            "name" : "version",
            "description" : "API version details.",
            "returns" : {
               "type" : "object",
               "properties" : {
                  "release" : { "type" : "string" }
               }
            }
         }
      }
   }
];
let method2cmd = { "GET": "get", "POST": "create" };
`

func TestConvertEndToEnd(t *testing.T) {
	result, err := Convert([]byte(fixture), nil)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Stats.Paths)
	assert.Equal(t, 4, result.Stats.Operations)

	doc := result.Document
	require.NotNil(t, doc.Paths.Find("/nodes"))
	require.NotNil(t, doc.Paths.Find("/version"))

	qemu := doc.Paths.Find("/nodes/{node}/qemu")
	require.NotNil(t, qemu)
	require.NotNil(t, qemu.Get)
	require.NotNil(t, qemu.Post)

	// GET keeps everything in the parameter list: the inherited path
	// variable plus the declared query parameter.
	require.Len(t, qemu.Get.Parameters, 2)
	assert.Equal(t, "node", qemu.Get.Parameters[0].Value.Name)
	assert.Equal(t, "path", qemu.Get.Parameters[0].Value.In)
	assert.True(t, qemu.Get.Parameters[0].Value.Required)
	assert.Equal(t, "full", qemu.Get.Parameters[1].Value.Name)
	assert.Equal(t, "query", qemu.Get.Parameters[1].Value.In)
	assert.False(t, qemu.Get.Parameters[1].Value.Required)

	// POST keeps only the path variable in the list and moves the rest
	// into the request body.
	require.Len(t, qemu.Post.Parameters, 1)
	assert.Equal(t, "node", qemu.Post.Parameters[0].Value.Name)
	require.NotNil(t, qemu.Post.RequestBody)
	body := qemu.Post.RequestBody.Value.Content.Get("application/json").Schema.Value
	assert.Contains(t, body.Properties, "name")
	assert.Contains(t, body.Properties, "vmid")
	assert.Equal(t, []string{"name"}, body.Required)
	assert.Contains(t, qemu.Post.Description, "Permissions: Requires VM.Allocate on /vms.")
}

func TestConvertRespectsSourceVariable(t *testing.T) {
	cfg := config.Default()
	cfg.SourceVariable = "pveapi"
	_, err := Convert([]byte(fixture), cfg)
	require.Error(t, err)

	result, err := Convert([]byte(`pveapi = [{"text": "version", "info": {"GET": {"name": "v"}}}]`), cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Stats.Paths)
}

func TestConvertFileMissingInput(t *testing.T) {
	_, err := ConvertFile("testdata/does-not-exist.js", nil)
	require.Error(t, err)
}

func TestConvertIdempotent(t *testing.T) {
	first, err := Convert([]byte(fixture), nil)
	require.NoError(t, err)
	second, err := Convert([]byte(fixture), nil)
	require.NoError(t, err)

	a, err := first.Marshal("json")
	require.NoError(t, err)
	b, err := second.Marshal("json")
	require.NoError(t, err)
	assert.Equal(t, a, b)

	ya, err := first.Marshal("yaml")
	require.NoError(t, err)
	yb, err := second.Marshal("yaml")
	require.NoError(t, err)
	assert.Equal(t, ya, yb)
}
