package server

// rootElementID is the id of the element that holds the rendered tree.
const rootElementID = "jsonedit-root"

// clientScript binds the rendered markers to the WebSocket channel. Each
// element with data-hid and a data-on-<event> marker forwards that event;
// replies carrying HTML replace the root content.
const clientScript = `(function () {
  var root = document.getElementById("` + rootElementID + `");
  if (!root) { return; }
  var proto = location.protocol === "https:" ? "wss:" : "ws:";
  var ws = new WebSocket(proto + "//" + location.host + "/ws?session=" + encodeURIComponent(root.dataset.session));
  var events = ["click", "input", "change", "keydown", "focus", "blur"];

  function target(el, type) {
    while (el && el !== root) {
      if (el.dataset && el.dataset.hid && el.getAttribute("data-on-" + type) === "true") { return el; }
      el = el.parentElement;
    }
    return null;
  }

  function send(type, ev) {
    var el = target(ev.target, type);
    if (!el || ws.readyState !== WebSocket.OPEN) { return; }
    var msg = { hid: el.dataset.hid, type: type };
    if (type === "input" || type === "change") { msg.value = el.value; }
    if (type === "keydown") {
      msg.key = ev.key; msg.code = ev.code; msg.repeat = ev.repeat;
      msg.ctrl = ev.ctrlKey; msg.shift = ev.shiftKey; msg.alt = ev.altKey; msg.meta = ev.metaKey;
    }
    ws.send(JSON.stringify(msg));
  }

  events.forEach(function (type) {
    root.addEventListener(type, function (ev) { send(type, ev); }, true);
  });

  ws.onmessage = function (m) {
    var reply = JSON.parse(m.data);
    if (reply.error) { console.warn("jsonedit:", reply.error.code || "", reply.error.message); }
    if (typeof reply.html === "string" && reply.html !== "") {
      root.innerHTML = reply.html;
      var focus = root.querySelector("[autofocus]");
      if (focus) { focus.focus(); }
    }
  };
})();`
