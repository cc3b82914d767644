// Package jsloader is the production remote.ModuleLoader. It downloads a
// remote's entry script and evaluates it in an embedded JavaScript runtime
// (goja), emulating a module federation container.
//
// # Container contract
//
// After the entry script runs, the loader looks for a container:
//
//   - when ContainerName is set, the global object with that name;
//   - otherwise the global scope itself.
//
// The container must provide get(key) and may provide init(shareScope).
// init is called once with an empty share scope. get(exposedKey) returns a
// factory (or a Promise of one); calling the factory yields the module object
// (or a Promise of it). The exported object becomes the remote.ModuleRecord.
//
//	var scheduling = {
//	  init: function (scope) {},
//	  get: function (key) {
//	    if (key !== "./Module") throw new Error("not exposed: " + key);
//	    return Promise.resolve(function () {
//	      return { RemoteRoutes: [{ path: "" }] };
//	    });
//	  }
//	};
//
// # Limits
//
// Scripts above ScriptMaxBytes are rejected without being evaluated. The VM
// is interrupted when the caller's context ends or the execution budget runs
// out, so a runaway script cannot pin a goroutine forever.
package jsloader
