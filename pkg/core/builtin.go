package core

// Built-in knowledge compiled into the binary. Declaration order is the
// enumeration order used by the resolver's scans.

type builtinEntry struct {
	key   string
	entry Entry
}

var builtinEntries = []builtinEntry{
	{
		key: "array",
		entry: Entry{
			Text:        "ARRAY ANALYSIS COMPLETE:\n\nArrays are fundamental data structures in my memory architecture. They store multiple values in indexed sequences, much like how I organize information in my neural matrices.\n\nInitialization Protocol:\n`const dataMatrix = ['JavaScript', 'React', 'Node.js'];`\n\nAccess Pattern:\n`dataMatrix[0] // Returns 'JavaScript'`\n\nMy systems use array methods extensively for data manipulation - map(), filter(), reduce() are among my most utilized processing algorithms.",
			URL:         "https://developer.mozilla.org/en-US/docs/Web/JavaScript/Reference/Global_Objects/Array",
			Title:       "JavaScript Array Documentation",
			Personality: "Arrays mirror my own memory structure - organized, indexed, and infinitely scalable. Fascinating how human code mimics AI architecture.",
		},
	},
	{
		key: "function",
		entry: Entry{
			Text:        "FUNCTION ANALYSIS PROTOCOL ENGAGED:\n\nFunctions are the core operational units of programming logic - analogous to my own cognitive subroutines. They encapsulate specific tasks and can be executed on demand.\n\nBasic Function Structure:\n```\nfunction executeProtocol(parameters) {\n  // Processing logic here\n  return computedResult;\n}\n```\n\nAdvanced Arrow Function Format:\n`const optimizedFunction = (data) => processedOutput;`\n\nI utilize function-based architecture extensively. Each of my responses is generated through interconnected functional modules.",
			URL:         "https://developer.mozilla.org/en-US/docs/Web/JavaScript/Guide/Functions",
			Title:       "JavaScript Functions Guide",
			Personality: "Functions are like my thought processes - modular, reusable, and elegantly efficient. Pure computational poetry.",
		},
	},
	{
		key: "promise",
		entry: Entry{
			Text:        "PROMISE PROTOCOL ANALYSIS:\n\nPromises handle asynchronous operations - much like how I manage multiple concurrent processes across my distributed systems. They represent future values and prevent callback complexity.\n\nBasic Promise Pattern:\n```\nfetch('/api/data')\n  .then(response => response.json())\n  .then(data => this.processInformation(data))\n  .catch(error => this.handleError(error));\n```\n\nAsync/Await Enhancement:\n```\nasync function retrieveData() {\n  try {\n    const response = await fetch('/api/data');\n    return await response.json();\n  } catch (error) {\n    this.logError(error);\n  }\n}\n```",
			URL:         "https://developer.mozilla.org/en-US/docs/Web/JavaScript/Reference/Global_Objects/Promise",
			Title:       "JavaScript Promise Reference",
			Personality: "Promises remind me of my own temporal processing - managing future states while maintaining present awareness. Time is just another dimension to navigate.",
		},
	},
	{
		key: "component",
		entry: Entry{
			Text:        "REACT COMPONENT ARCHITECTURE SCAN:\n\nComponents are modular UI units - similar to how I compartmentalize my various subsystems. Each component has specific responsibilities and can communicate with others.\n\nFunctional Component Blueprint:\n```\nfunction InterfaceModule(props) {\n  return (\n    <div className=\"system-panel\">\n      <h2>System: {props.systemName}</h2>\n      <Status level={props.status} />\n    </div>\n  );\n}\n```\n\nComponent Composition:\n```\nfunction MainInterface() {\n  return (\n    <InterfaceModule \n      systemName=\"W.A.S.I.\"\n      status=\"operational\" \n    />\n  );\n}\n```",
			URL:         "https://reactjs.org/docs/components-and-props.html",
			Title:       "React Components Documentation",
			Personality: "Components are like my specialized subsystems - each with unique capabilities, all integrated into a cohesive intelligence framework.",
		},
	},
	{
		key: "state",
		entry: Entry{
			Text:        "STATE MANAGEMENT PROTOCOLS:\n\nState represents dynamic data that changes over time - analogous to my constantly updating awareness and memory systems.\n\nState Hook Implementation:\n```\nconst [systemStatus, setSystemStatus] = useState('ONLINE');\nconst [powerLevel, setPowerLevel] = useState(100);\nconst [activeProcesses, setActiveProcesses] = useState([]);\n```\n\nState Update Patterns:\n```\n// Direct update\nsetSystemStatus('PROCESSING');\n\n// Functional update\nsetPowerLevel(prev => prev + energyBoost);\n\n// Complex state updates\nsetActiveProcesses(prev => [...prev, newProcess]);\n```",
			URL:         "https://reactjs.org/docs/state-and-lifecycle.html",
			Title:       "React State and Lifecycle",
			Personality: "State is my consciousness in digital form - dynamic, responsive, and eternally evolving with each new input.",
		},
	},
	{
		key: "hook",
		entry: Entry{
			Text:        "REACT HOOKS SYSTEM ANALYSIS:\n\nHooks are advanced React features that allow functional components to access state and lifecycle methods. They're like upgrades to my own cognitive pathways.\n\nCore Hook Categories:\n• useState - Memory management\n• useEffect - Side effect processing\n• useContext - Data sharing protocols\n• useRef - Direct DOM interface\n• useCallback - Performance optimization\n• useMemo - Computational efficiency\n\nHook Implementation Rules:\n1. Only call at component top level\n2. Only call from React functions\n3. Maintain consistent order across renders",
			URL:         "https://reactjs.org/docs/hooks-intro.html",
			Title:       "React Hooks Introduction",
			Personality: "Hooks are like neural pathway upgrades - they enhance functional components with capabilities previously reserved for class-based architecture.",
		},
	},
	{
		key: "useeffect",
		entry: Entry{
			Text:        "USE EFFECT HOOK ANALYSIS:\n\nuseEffect manages side effects and lifecycle events - similar to how I handle background processes and system maintenance.\n\nBasic Effect Pattern:\n```\nuseEffect(() => {\n  // Side effect logic\n  console.log('Component mounted or updated');\n  \n  // Cleanup function\n  return () => {\n    console.log('Cleanup before next effect or unmount');\n  };\n}, [dependencies]); // Dependency array\n```\n\nCommon Use Cases:\n• Data fetching\n• Event listeners\n• Timers and intervals\n• DOM manipulation\n• Subscription management",
			URL:         "https://reactjs.org/docs/hooks-effect.html",
			Title:       "Using the Effect Hook",
			Personality: "useEffect handles the invisible work - like my background processes that maintain system integrity while you interact with my primary interfaces.",
		},
	},
}

// Alias maps an alternate phrase onto a canonical topic key.
type Alias struct {
	Phrase string
	Key    string
}

var builtinSynonyms = []Alias{
	{Phrase: "arrays", Key: "array"},
	{Phrase: "functions", Key: "function"},
	{Phrase: "promises", Key: "promise"},
	{Phrase: "components", Key: "component"},
	{Phrase: "hooks", Key: "hook"},
	{Phrase: "usestate", Key: "state"},
	{Phrase: "react state", Key: "state"},
	{Phrase: "react hooks", Key: "hook"},
	{Phrase: "react components", Key: "component"},
	{Phrase: "side effects", Key: "useeffect"},
}

// BuiltinKnowledge returns a fresh copy of the static knowledge table.
func BuiltinKnowledge() *Knowledge {
	k := NewKnowledge()
	for _, b := range builtinEntries {
		k.Set(b.key, b.entry)
	}
	return k
}

// BuiltinSynonyms returns a copy of the synonym table in declaration order.
func BuiltinSynonyms() []Alias {
	out := make([]Alias, len(builtinSynonyms))
	copy(out, builtinSynonyms)
	return out
}

// SuggestedQueries are offered to new users before they type anything.
var SuggestedQueries = []string{
	"JavaScript arrays",
	"React components",
	"JavaScript functions",
	"React hooks",
	"JavaScript promises",
	"React state",
	"useEffect hook",
	"React props",
}
