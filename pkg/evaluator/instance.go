package evaluator

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/opscart/cluster-cost-advisor/pkg/models"
)

// InstanceClass groups node types by what they are built for.
type InstanceClass string

const (
	ClassGeneral InstanceClass = "general"
	ClassCompute InstanceClass = "compute"
	ClassMemory  InstanceClass = "memory"
	ClassStorage InstanceClass = "storage"
	ClassGPU     InstanceClass = "gpu"
)

// InstanceInfo is what the node-type evaluator needs to know about an
// instance type, derived from the provider's naming scheme.
type InstanceInfo struct {
	Name       string
	Family     string
	Generation int
	VCPUs      int
	Class      InstanceClass
}

var (
	awsPattern   = regexp.MustCompile(`^([a-z]+)(\d+)([a-z]*)\.(\d*)(x?large|large|medium|small|metal)$`)
	azurePattern = regexp.MustCompile(`^Standard_([A-Z]+)(\d+)[a-z]*(?:_v(\d+))?$`)
	gcpPattern   = regexp.MustCompile(`^([a-z]\d+)-([a-z]+)-(\d+)[a-z]*$`)
)

// awsFamilyClass maps the leading family letter of an AWS instance
// type to its class. Multi-letter families fall back on the first letter.
var awsFamilyClass = map[byte]InstanceClass{
	'm': ClassGeneral,
	't': ClassGeneral,
	'c': ClassCompute,
	'r': ClassMemory,
	'x': ClassMemory,
	'z': ClassMemory,
	'i': ClassStorage,
	'd': ClassStorage,
	'p': ClassGPU,
	'g': ClassGPU,
}

var azureFamilyClass = map[byte]InstanceClass{
	'A': ClassGeneral,
	'B': ClassGeneral,
	'D': ClassGeneral,
	'F': ClassCompute,
	'E': ClassMemory,
	'M': ClassMemory,
	'L': ClassStorage,
	'N': ClassGPU,
}

// ParseInstanceType decodes a provider node type name. The second
// return is false when the name does not follow the provider's scheme.
func ParseInstanceType(provider models.CloudProvider, name string) (InstanceInfo, bool) {
	switch provider {
	case models.CloudAWS:
		return parseAWS(name)
	case models.CloudAzure:
		return parseAzure(name)
	case models.CloudGCP:
		return parseGCP(name)
	}
	return InstanceInfo{}, false
}

func parseAWS(name string) (InstanceInfo, bool) {
	m := awsPattern.FindStringSubmatch(name)
	if m == nil {
		return InstanceInfo{}, false
	}
	gen, _ := strconv.Atoi(m[2])
	class, ok := awsFamilyClass[m[1][0]]
	if !ok {
		class = ClassGeneral
	}
	return InstanceInfo{
		Name:       name,
		Family:     m[1] + m[2] + m[3],
		Generation: gen,
		VCPUs:      awsSizeVCPUs(m[4], m[5]),
		Class:      class,
	}, true
}

func awsSizeVCPUs(multiplier, size string) int {
	switch size {
	case "small":
		return 1
	case "medium":
		return 1
	case "large":
		return 2
	case "metal":
		return 96
	}
	// xlarge is 4 vCPUs; NxLarge scales linearly.
	n := 1
	if multiplier != "" {
		n, _ = strconv.Atoi(multiplier)
		if n < 1 {
			n = 1
		}
	}
	return 4 * n
}

func parseAzure(name string) (InstanceInfo, bool) {
	m := azurePattern.FindStringSubmatch(name)
	if m == nil {
		return InstanceInfo{}, false
	}
	vcpus, _ := strconv.Atoi(m[2])
	gen := 1
	if m[3] != "" {
		gen, _ = strconv.Atoi(m[3])
	}
	class, ok := azureFamilyClass[m[1][0]]
	if !ok {
		class = ClassGeneral
	}
	return InstanceInfo{
		Name:       name,
		Family:     m[1],
		Generation: gen,
		VCPUs:      vcpus,
		Class:      class,
	}, true
}

func parseGCP(name string) (InstanceInfo, bool) {
	m := gcpPattern.FindStringSubmatch(name)
	if m == nil {
		return InstanceInfo{}, false
	}
	vcpus, _ := strconv.Atoi(m[3])
	gen, _ := strconv.Atoi(m[1][1:])

	class := ClassGeneral
	switch {
	case strings.HasPrefix(m[1], "a"):
		class = ClassGPU
	case strings.HasPrefix(m[1], "c"):
		class = ClassCompute
	case strings.HasPrefix(m[1], "m"):
		class = ClassMemory
	case m[2] == "highmem":
		class = ClassMemory
	case m[2] == "highcpu":
		class = ClassCompute
	case m[2] == "highgpu" || m[2] == "megagpu" || m[2] == "ultragpu":
		class = ClassGPU
	}
	return InstanceInfo{
		Name:       name,
		Family:     m[1],
		Generation: gen,
		VCPUs:      vcpus,
		Class:      class,
	}, true
}

// IsLegacyGeneration reports whether the instance belongs to a
// superseded hardware generation for its provider.
func IsLegacyGeneration(provider models.CloudProvider, info InstanceInfo) bool {
	switch provider {
	case models.CloudAWS:
		return info.Generation <= 4
	case models.CloudAzure:
		return info.Generation <= 2
	case models.CloudGCP:
		return info.Family == "n1"
	}
	return false
}
